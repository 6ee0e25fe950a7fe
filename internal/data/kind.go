package data

// MoveKind selects the spawn geometry and combat behavior of an ability.
// Closed set: extension happens by registering a behavior override, not by
// adding variants.
type MoveKind int32

const (
	// MoveFly travels in a straight line quantized to the 8-way compass.
	MoveFly MoveKind = iota
	// MoveFreeFly travels toward the destination without quantization.
	MoveFreeFly
	// MoveLine fires level instances along one direction, staggered 60 ms.
	MoveLine
	// MoveCircle fires one instance per 32-way compass direction at once.
	MoveCircle
	// MoveSector fans symmetric pairs around a quantized center direction.
	MoveSector
	// MoveRandomSector is MoveSector with a random delay per instance.
	MoveRandomSector
	// MoveHeart traverses the full compass with a lobed delay pattern.
	MoveHeart
	// MoveSpiral traverses the compass progressively, rotating outward.
	MoveSpiral
	// MoveVShape flies one centered instance plus perpendicular side copies.
	MoveVShape
	// MoveThrow fans a count x count grid of instances around the destination.
	MoveThrow
	// MoveFixedPoint places one stationary instance at the destination.
	MoveFixedPoint
	// MoveFixedWall raises a stationary tile wall across the aim direction.
	MoveFixedWall
	// MoveWallMove is a wall formation that advances along the aim direction.
	MoveWallMove
	// MoveRegionSquare covers a filled square of tiles around the destination.
	MoveRegionSquare
	// MoveRegionCross covers the two tile axes through the destination.
	MoveRegionCross
	// MoveRegionRectangle covers a direction-dependent rectangle of tiles.
	MoveRegionRectangle
	// MoveRegionTriangle covers a wedge widening along the aim direction.
	MoveRegionTriangle
	// MoveFollowOwner pins one instance to the owner: the self-buff family.
	MoveFollowOwner
	// MoveFollowEnemy travels straight, then re-aims at the nearest enemy.
	MoveFollowEnemy
	// MoveFullScreen is the exclusive super-mode hitting all targets in view.
	MoveFullScreen
	// MoveSummon spawns a controlled combatant instead of a projectile.
	MoveSummon
	// MoveTransport relocates the owner to the destination.
	MoveTransport
	// MoveControl binds control of the target combatant.
	MoveControl
	// MoveTrail drops stationary copies along the owner's path.
	MoveTrail

	moveKindCount
)

var moveKindNames = [moveKindCount]string{
	MoveFly:             "Fly",
	MoveFreeFly:         "FreeFly",
	MoveLine:            "Line",
	MoveCircle:          "Circle",
	MoveSector:          "Sector",
	MoveRandomSector:    "RandomSector",
	MoveHeart:           "Heart",
	MoveSpiral:          "Spiral",
	MoveVShape:          "VShape",
	MoveThrow:           "Throw",
	MoveFixedPoint:      "FixedPoint",
	MoveFixedWall:       "FixedWall",
	MoveWallMove:        "WallMove",
	MoveRegionSquare:    "RegionSquare",
	MoveRegionCross:     "RegionCross",
	MoveRegionRectangle: "RegionRectangle",
	MoveRegionTriangle:  "RegionTriangle",
	MoveFollowOwner:     "FollowOwner",
	MoveFollowEnemy:     "FollowEnemy",
	MoveFullScreen:      "FullScreen",
	MoveSummon:          "Summon",
	MoveTransport:       "Transport",
	MoveControl:         "Control",
	MoveTrail:           "Trail",
}

// String returns the data-file spelling of the kind.
func (k MoveKind) String() string {
	if k < 0 || k >= moveKindCount {
		return "Unknown"
	}
	return moveKindNames[k]
}

// Valid reports whether the kind is a member of the closed set.
func (k MoveKind) Valid() bool {
	return k >= 0 && k < moveKindCount
}

// ParseMoveKind resolves a data-file value to a MoveKind. Accepts both the
// symbolic name and the numeric index. Returns (MoveFly, false) for
// unknown values so callers can fall back to the generic projectile.
func ParseMoveKind(s string) (MoveKind, bool) {
	for k, name := range moveKindNames {
		if name == s {
			return MoveKind(k), true
		}
	}
	if n, err := parseInt32(s); err == nil && MoveKind(n).Valid() {
		return MoveKind(n), true
	}
	return MoveFly, false
}
