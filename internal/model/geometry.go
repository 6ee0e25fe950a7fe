package model

import "math"

// TileSize is the width/height of one map tile in world units.
const TileSize = 32

// Point is a position in world units. Value type, passed by value.
type Point struct {
	X float64
	Y float64
}

// Tile is a position on the tile grid, derived from a Point.
type Tile struct {
	X int32
	Y int32
}

// Tile returns the tile containing this point.
func (p Point) Tile() Tile {
	return Tile{
		X: int32(math.Floor(p.X / TileSize)),
		Y: int32(math.Floor(p.Y / TileSize)),
	}
}

// Add returns the point displaced by v scaled by dist.
func (p Point) Add(v Vec, dist float64) Point {
	return Point{X: p.X + v.X*dist, Y: p.Y + v.Y*dist}
}

// DistanceTo returns the euclidean distance to other.
func (p Point) DistanceTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Center returns the world-unit center of the tile.
func (t Tile) Center() Point {
	return Point{
		X: float64(t.X)*TileSize + TileSize/2,
		Y: float64(t.Y)*TileSize + TileSize/2,
	}
}

// Offset returns the tile displaced by (dx, dy) tiles.
func (t Tile) Offset(dx, dy int32) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Vec is a 2D direction vector. The zero vector means "no movement"
// and survives Normalize unchanged.
type Vec struct {
	X float64
	Y float64
}

// IsZero reports whether the vector has no direction.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec) Normalize() Vec {
	if v.IsZero() {
		return v
	}
	length := math.Sqrt(v.X*v.X + v.Y*v.Y)
	return Vec{X: v.X / length, Y: v.Y / length}
}

// Perp returns the vector rotated a quarter turn clockwise on screen
// (x right, y down).
func (v Vec) Perp() Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// Direction returns the unit vector pointing from one point toward another.
// Coincident points yield the zero vector.
func Direction(from, to Point) Vec {
	return Vec{X: to.X - from.X, Y: to.Y - from.Y}.Normalize()
}
