package world

import "github.com/veleth/moonblade/internal/model"

// Terrain is the tile grid of projectile obstruction flags. The real map
// loader lives outside the engine; this grid is the narrow slice the
// collision query needs.
type Terrain struct {
	width   int32
	height  int32
	blocked []bool
}

// NewTerrain creates an open terrain of width x height tiles.
func NewTerrain(width, height int32) *Terrain {
	return &Terrain{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
	}
}

// SetBlocked marks one tile as obstructing projectiles.
func (t *Terrain) SetBlocked(tile model.Tile, blocked bool) {
	if !t.inBounds(tile) {
		return
	}
	t.blocked[tile.Y*t.width+tile.X] = blocked
}

// TileBlocked reports whether a projectile is obstructed at the tile.
// Everything outside the map counts as blocked.
func (t *Terrain) TileBlocked(tile model.Tile) bool {
	if !t.inBounds(tile) {
		return true
	}
	return t.blocked[tile.Y*t.width+tile.X]
}

func (t *Terrain) inBounds(tile model.Tile) bool {
	return tile.X >= 0 && tile.X < t.width && tile.Y >= 0 && tile.Y < t.height
}

// Width returns the terrain width in tiles.
func (t *Terrain) Width() int32 { return t.width }

// Height returns the terrain height in tiles.
func (t *Terrain) Height() int32 { return t.height }
