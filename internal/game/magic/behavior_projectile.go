package magic

import (
	"github.com/veleth/moonblade/internal/game/combat"
)

// projectileBehavior is the damage-dealing family shared by every flying
// and area kind. Statuses are applied by the update loop before Apply runs.
type projectileBehavior struct{}

func (b *projectileBehavior) Name() string { return "Projectile" }

func (b *projectileBehavior) Apply(ctx *HitContext) int32 {
	realized, _ := combat.Strike(ctx.M.rng, ctx.Target, ctx.Sprite.Damage)
	return realized
}
