package magic

import "log/slog"

// transportBehavior relocates the owner to the destination. Blocked
// destinations cancel the move; the vanish animation still plays.
type transportBehavior struct{}

func (b *transportBehavior) Name() string { return "Transport" }

func (b *transportBehavior) Apply(ctx *HitContext) int32 {
	owner := ctx.Owner
	if owner == nil {
		return 0
	}
	dest := ctx.Sprite.Dest
	if ctx.M.collide.TileBlocked(dest.Tile()) {
		slog.Debug("transport destination blocked", "dest", dest.Tile())
		return 0
	}
	owner.SetPosition(dest)
	return 0
}
