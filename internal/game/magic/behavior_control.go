package magic

import "log/slog"

// controlBehavior binds control of the target combatant to the owner for
// the configured duration. The host decides what "control" means (input
// redirection, AI override); the engine only brokers the bind.
type controlBehavior struct{}

func (b *controlBehavior) Name() string { return "Control" }

func (b *controlBehavior) Apply(ctx *HitContext) int32 {
	if ctx.Target == nil {
		slog.Debug("control cast without a target", "ability", ctx.Sprite.Def.Name)
		return 0
	}
	if ctx.M.control == nil {
		slog.Debug("no control callback installed", "ability", ctx.Sprite.Def.Name)
		return 0
	}
	ctx.M.control(ctx.Owner, ctx.Target, ctx.Sprite.Def.ControlDurationMs)
	return 0
}
