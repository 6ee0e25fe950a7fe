package magic

import "log/slog"

// summonBehavior spawns a controlled combatant instead of a projectile.
// The actual combatant construction is delegated to the host through the
// manager's summon callback; the instance itself never collides.
type summonBehavior struct{}

func (b *summonBehavior) Name() string { return "Summon" }

func (b *summonBehavior) Apply(ctx *HitContext) int32 {
	def := &ctx.Sprite.Def
	if def.SummonFile == "" {
		slog.Warn("summon ability without SummonFile", "ability", def.Name)
		return 0
	}
	if ctx.M.summon == nil {
		slog.Debug("no summon callback installed", "ability", def.Name)
		return 0
	}
	ctx.M.summon(ctx.Owner, def.SummonFile, ctx.Sprite.Dest)
	return 0
}
