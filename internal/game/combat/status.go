package combat

import (
	"log/slog"
	"math/rand/v2"

	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/model"
)

// ApplyStatus rolls the ability's status payload against the target and
// starts the condition on success. Returns whether it stuck.
func ApplyStatus(rng *rand.Rand, target model.Combatant, p data.StatusPayload) bool {
	if p.Kind == model.StatusNone || p.DurationMs <= 0 {
		return false
	}
	if p.Probability <= 0 {
		return false
	}
	if p.Probability < 100 && rng.Int32N(100) >= p.Probability {
		return false
	}

	if p.Kind == model.StatusPoison {
		level := p.PoisonLevel
		if level < 1 {
			level = 1
		}
		target.Status().ApplyPoison(p.DurationMs, level)
	} else {
		target.Status().Apply(p.Kind, p.DurationMs)
	}

	slog.Debug("status applied",
		"target", target.Name(),
		"status", p.Kind,
		"duration_ms", p.DurationMs)
	return true
}
