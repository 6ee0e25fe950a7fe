package magic

import "log/slog"

// selfBehavior is the follow-owner family: auras and self-buffs. Apply
// runs once at creation against the owner, not on collision; the buff is
// torn down when the instance expires.
type selfBehavior struct{}

func (b *selfBehavior) Name() string { return "Self" }

func (b *selfBehavior) Apply(ctx *HitContext) int32 {
	target := ctx.Target
	if target == nil {
		return 0
	}

	def := &ctx.Sprite.Def
	if def.Heal > 0 {
		target.SetLife(target.Life() + def.Heal)
	}
	if def.HealMana > 0 {
		target.SetMana(target.Mana() + def.HealMana)
	}
	target.AttachBuff(ctx.Sprite.ID)
	ctx.Sprite.buffRef = target.Ref()

	slog.Debug("self effect applied",
		"sprite", ctx.Sprite.ID,
		"target", target.Name(),
		"heal", def.Heal)
	return 0
}

func (b *selfBehavior) OnEnd(ctx *EndContext) {
	ref := ctx.Sprite.buffRef
	if ref.IsZero() {
		ref = ctx.Sprite.Owner
	}
	if bearer, ok := ctx.M.source.Resolve(ref); ok {
		bearer.DetachBuff(ctx.Sprite.ID)
	}
}
