package magic

import "github.com/veleth/moonblade/internal/model"

// The tile-formation family: stationary or slow instances arranged around
// the destination (or origin), count and spacing scaling with level.

// tileStep8 is the tile offset of one step along each 8-way direction,
// index 0 = south, clockwise.
var tileStep8 = [DirCount8][2]int32{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

// tilePerp8 is the perpendicular tile offset for each 8-way direction.
var tilePerp8 = [DirCount8][2]int32{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// stationaryAt creates one stationary instance centered on a tile.
func (m *Manager) stationaryAt(inv *invocation, tile model.Tile) *Sprite {
	return m.newSprite(inv, tile.Center(), model.Vec{}, 0, 0)
}

// spawnFixedPoint places one stationary instance on the destination tile.
func spawnFixedPoint(m *Manager, inv *invocation) []*Sprite {
	return []*Sprite{m.stationaryAt(inv, inv.dest.Tile())}
}

// wallHalfLen returns the wall half-length in tiles: half the
// definition's RegionWidth when set, level-derived otherwise.
func wallHalfLen(inv *invocation) int32 {
	if w := inv.def.Region.Width; w > 0 {
		return w / 2
	}
	return 1 + inv.level/3
}

// wallTiles returns the tiles of a wall formation crossing the aim
// direction at the destination.
func wallTiles(center model.Tile, i8 int, halfLen int32) []model.Tile {
	perp := tilePerp8[i8]
	tiles := make([]model.Tile, 0, 2*halfLen+1)
	for k := -halfLen; k <= halfLen; k++ {
		tiles = append(tiles, center.Offset(perp[0]*k, perp[1]*k))
	}
	return tiles
}

// spawnFixedWall raises a stationary wall of instances across the aim
// direction at the destination.
func spawnFixedWall(m *Manager, inv *invocation) []*Sprite {
	i8 := Quantize8(inv.aim)
	tiles := wallTiles(inv.dest.Tile(), i8, wallHalfLen(inv))
	sprites := make([]*Sprite, 0, len(tiles))
	for _, t := range tiles {
		sprites = append(sprites, m.stationaryAt(inv, t))
	}
	return sprites
}

// spawnWallMove raises the same wall formation at the origin and sends it
// slowly along the aim direction.
func spawnWallMove(m *Manager, inv *invocation) []*Sprite {
	i8 := Quantize8(inv.aim)
	dir := Dir8(i8)
	tiles := wallTiles(inv.origin.Tile(), i8, wallHalfLen(inv))
	sprites := make([]*Sprite, 0, len(tiles))
	for _, t := range tiles {
		s := m.newSprite(inv, t.Center(), dir, inv.def.Speed, 0)
		sprites = append(sprites, s)
	}
	return sprites
}

// spawnRegionSquare covers a filled square of tiles around the
// destination; the half-extent scales with level.
func spawnRegionSquare(m *Manager, inv *invocation) []*Sprite {
	r := regionRadius(inv)
	center := inv.dest.Tile()
	sprites := make([]*Sprite, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			sprites = append(sprites, m.stationaryAt(inv, center.Offset(dx, dy)))
		}
	}
	return sprites
}

// spawnRegionCross covers the two tile axes through the destination.
func spawnRegionCross(m *Manager, inv *invocation) []*Sprite {
	r := regionRadius(inv)
	center := inv.dest.Tile()
	sprites := make([]*Sprite, 0, 4*r+1)
	sprites = append(sprites, m.stationaryAt(inv, center))
	for k := int32(1); k <= r; k++ {
		sprites = append(sprites,
			m.stationaryAt(inv, center.Offset(k, 0)),
			m.stationaryAt(inv, center.Offset(-k, 0)),
			m.stationaryAt(inv, center.Offset(0, k)),
			m.stationaryAt(inv, center.Offset(0, -k)))
	}
	return sprites
}

// spawnRegionRectangle covers a rectangle extending from the destination
// along the aim direction: RegionWidth tiles wide (default three) and
// RegionHeight long (default level-derived). Direction-dependent: each of
// the 8 quantized directions lays the rectangle out along its own
// step/perpendicular axes.
func spawnRegionRectangle(m *Manager, inv *invocation) []*Sprite {
	i8 := Quantize8(inv.aim)
	step := tileStep8[i8]
	perp := tilePerp8[i8]
	length := regionLength(inv)
	halfW := int32(1)
	if w := inv.def.Region.Width; w > 0 {
		halfW = w / 2
	}
	center := inv.dest.Tile()

	sprites := make([]*Sprite, 0, (2*halfW+1)*length)
	for i := int32(0); i < length; i++ {
		for j := -halfW; j <= halfW; j++ {
			tile := center.Offset(step[0]*i+perp[0]*j, step[1]*i+perp[1]*j)
			sprites = append(sprites, m.stationaryAt(inv, tile))
		}
	}
	return sprites
}

// spawnRegionTriangle covers a wedge opening from the origin along the
// aim direction: row k sits k steps out and is 2k-1 tiles wide.
func spawnRegionTriangle(m *Manager, inv *invocation) []*Sprite {
	i8 := Quantize8(inv.aim)
	step := tileStep8[i8]
	perp := tilePerp8[i8]
	depth := regionLength(inv)
	apex := inv.origin.Tile()

	var sprites []*Sprite
	for k := int32(1); k <= depth; k++ {
		for j := -(k - 1); j <= k-1; j++ {
			tile := apex.Offset(step[0]*k+perp[0]*j, step[1]*k+perp[1]*j)
			sprites = append(sprites, m.stationaryAt(inv, tile))
		}
	}
	return sprites
}
