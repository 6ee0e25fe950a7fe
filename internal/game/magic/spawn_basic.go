package magic

import "github.com/veleth/moonblade/internal/model"

// The straight-flight family: single instances, staggered lines, the
// 32-direction circle burst, V-shapes and the thrown grid.

// spawnFly fires one instance along the 8-way quantized aim direction.
func spawnFly(m *Manager, inv *invocation) []*Sprite {
	dir := Dir8(Quantize8(inv.aim))
	return []*Sprite{m.newSprite(inv, inv.origin, dir, inv.def.Speed, 0)}
}

// spawnFreeFly fires one instance straight at the destination, direction
// unquantized.
func spawnFreeFly(m *Manager, inv *invocation) []*Sprite {
	return []*Sprite{m.newSprite(inv, inv.origin, inv.aim, inv.def.Speed, 0)}
}

// spawnLine fires max(1, level) instances along the same direction, each
// delayed by a fixed 60 ms stagger.
func spawnLine(m *Manager, inv *invocation) []*Sprite {
	n := int(inv.level)
	if n < 1 {
		n = 1
	}
	sprites := make([]*Sprite, 0, n)
	for i := range n {
		sprites = append(sprites, m.newSprite(inv, inv.origin, inv.aim, inv.def.Speed, int32(i)*lineStaggerMs))
	}
	return sprites
}

// spawnCircle fires one instance per 32-way compass direction, all at
// once, speed scaled per direction so the expanding ring looks round
// under the 2:1 projection.
func spawnCircle(m *Manager, inv *invocation) []*Sprite {
	sprites := make([]*Sprite, 0, DirCount32)
	for i := range DirCount32 {
		speed := inv.def.Speed * CircleSpeedScale(i)
		sprites = append(sprites, m.newSprite(inv, inv.origin, Dir32(i), speed, 0))
	}
	return sprites
}

const vShapeSpacing = model.TileSize // world units between side instances

// vShapePerp tabulates the perpendicular unit vector for each 8-way
// travel direction, computed once at startup.
var vShapePerp = func() (t [DirCount8]model.Vec) {
	for i := range t {
		t[i] = Dir8(i).Perp()
	}
	return t
}()

// spawnVShape fires one centered instance plus symmetric side instances
// offset perpendicular to the travel direction, offsets taken from the
// per-direction table.
func spawnVShape(m *Manager, inv *invocation) []*Sprite {
	i8 := Quantize8(inv.aim)
	dir := Dir8(i8)
	perp := vShapePerp[i8]

	pairs := sectorPairs(inv.level)
	sprites := make([]*Sprite, 0, 2*pairs+1)
	sprites = append(sprites, m.newSprite(inv, inv.origin, dir, inv.def.Speed, 0))
	for k := 1; k <= pairs; k++ {
		offset := float64(k) * vShapeSpacing
		sprites = append(sprites,
			m.newSprite(inv, inv.origin.Add(perp, -offset), dir, inv.def.Speed, 0),
			m.newSprite(inv, inv.origin.Add(perp, offset), dir, inv.def.Speed, 0))
	}
	return sprites
}

// spawnThrow fans a count x count grid of simultaneous instances around
// the destination, each flying from the origin toward its own offset
// destination.
func spawnThrow(m *Manager, inv *invocation) []*Sprite {
	count := throwCount(inv.level)
	half := float64(count-1) / 2

	sprites := make([]*Sprite, 0, count*count)
	for gx := int32(0); gx < count; gx++ {
		for gy := int32(0); gy < count; gy++ {
			dest := model.Point{
				X: inv.dest.X + (float64(gx)-half)*model.TileSize,
				Y: inv.dest.Y + (float64(gy)-half)*model.TileSize,
			}
			s := m.newSprite(inv, inv.origin, model.Direction(inv.origin, dest), inv.def.Speed, 0)
			s.Dest = dest
			s.stopAtDest = true
			sprites = append(sprites, s)
		}
	}
	return sprites
}
