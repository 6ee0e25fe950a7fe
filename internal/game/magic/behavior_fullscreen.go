package magic

import (
	"log/slog"

	"github.com/veleth/moonblade/internal/game/combat"
)

// fullScreenBehavior is the exclusive super mode: one stationary instance,
// no collision; at its vanish trigger the manager resolves Apply against
// every valid target in view.
type fullScreenBehavior struct{}

func (b *fullScreenBehavior) Name() string { return "FullScreen" }

func (b *fullScreenBehavior) OnCast(ctx *CastContext) {
	if ctx.Def.FlyingSound == "" {
		return
	}
	// Announce-only: the cast sound doubles as the super-mode cue.
	slog.Debug("full-screen mode announced", "ability", ctx.Def.Name)
}

func (b *fullScreenBehavior) Apply(ctx *HitContext) int32 {
	realized, _ := combat.Strike(ctx.M.rng, ctx.Target, ctx.Sprite.Damage)
	return realized
}
