package magic

import (
	"log/slog"

	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/game/combat"
	"github.com/veleth/moonblade/internal/model"
)

// invocation carries one useAbility call through the spawner layer.
// The definition is already resolved at the cast level and the damage
// package is computed once here, shared by every spawned instance.
type invocation struct {
	ownerRef model.Ref
	owner    model.Combatant
	def      *data.Definition
	level    int32
	origin   model.Point
	dest     model.Point
	target   model.Combatant // nil when absent
	damage   combat.Resolved
	aim      model.Vec // normalized origin->dest, south when degenerate
}

// spawnFunc computes the instance set for one movement-pattern kind:
// how many, where, which direction, and any spawn delay. Pure with
// respect to the world: it reads the invocation and writes only new
// sprites.
type spawnFunc func(m *Manager, inv *invocation) []*Sprite

var spawners = map[data.MoveKind]spawnFunc{}

func init() {
	spawners[data.MoveFly] = spawnFly
	spawners[data.MoveFreeFly] = spawnFreeFly
	spawners[data.MoveLine] = spawnLine
	spawners[data.MoveCircle] = spawnCircle
	spawners[data.MoveSector] = spawnSector
	spawners[data.MoveRandomSector] = spawnRandomSector
	spawners[data.MoveHeart] = spawnHeart
	spawners[data.MoveSpiral] = spawnSpiral
	spawners[data.MoveVShape] = spawnVShape
	spawners[data.MoveThrow] = spawnThrow
	spawners[data.MoveFixedPoint] = spawnFixedPoint
	spawners[data.MoveFixedWall] = spawnFixedWall
	spawners[data.MoveWallMove] = spawnWallMove
	spawners[data.MoveRegionSquare] = spawnRegionSquare
	spawners[data.MoveRegionCross] = spawnRegionCross
	spawners[data.MoveRegionRectangle] = spawnRegionRectangle
	spawners[data.MoveRegionTriangle] = spawnRegionTriangle
	spawners[data.MoveFollowOwner] = spawnFollowOwner
	spawners[data.MoveFollowEnemy] = spawnFollowEnemy
	spawners[data.MoveFullScreen] = spawnFullScreen
	spawners[data.MoveSummon] = spawnSummon
	spawners[data.MoveTransport] = spawnTransport
	spawners[data.MoveControl] = spawnControl
	spawners[data.MoveTrail] = spawnTrail
}

// spawnerFor resolves the spawner for a kind, falling back to the free
// projectile geometry for anything unknown.
func spawnerFor(kind data.MoveKind) spawnFunc {
	if fn, ok := spawners[kind]; ok {
		return fn
	}
	slog.Warn("no spawner for move kind, using free flight", "kind", kind)
	return spawnFreeFly
}

// Spawn timing constants.
const (
	lineStaggerMs      = 60  // delay between consecutive line instances
	heartStepMs        = 40  // per-index delay of the heart traversal
	spiralStepMs       = 40  // per-index delay of the spiral traversal
	randomSectorMaxMs  = 300 // upper bound of the random sector delay
	defaultFlightMs    = 3000
	followEnemyArmDist = 3 * model.TileSize // straight flight before tracking arms
	trailCopyLifeMs    = 1000
	defaultTrailGapMs  = 300
)

// newSprite builds one instance for the invocation. The caller decides
// placement (active list or delayed queue) through Manager.place.
func (m *Manager) newSprite(inv *invocation, pos model.Point, dir model.Vec, speed float64, delayMs int32) *Sprite {
	m.nextID++
	s := &Sprite{
		ID:              m.nextID,
		Owner:           inv.ownerRef,
		OwnerAllegiance: inv.owner.Allegiance(),
		Def:             *inv.def,
		Level:           inv.level,
		Dir:             dir,
		Dest:            inv.dest,
		Velocity:        speed,
		Damage:          inv.damage,
		Anim:            m.anims.CachedOrPlaceholder(inv.def.ActionFile),
		Vanish:          m.anims.CachedOrPlaceholder(inv.def.VanishFile),
		bouncesLeft:     inv.def.BounceCount,
	}
	if inv.target != nil {
		s.Target = inv.target.Ref()
	}
	s.SetPos(pos)
	s.waitMs = inv.def.WaitMs + delayMs

	switch {
	case inv.def.LifeMs > 0:
		s.lifeMs = inv.def.LifeMs
	case speed == 0:
		// Stationary effects live for one animation cycle.
		s.lifeMs = s.Anim.DurationMs()
	default:
		s.lifeMs = defaultFlightMs
	}
	return s
}

// sectorPairs returns the number of symmetric side pairs for fan kinds:
// grows by level in steps of 3.
func sectorPairs(level int32) int {
	if level < 1 {
		level = 1
	}
	return 1 + int(level)/3
}

// throwCount returns the grid edge for Throw kinds, clamped to keep the
// burst bounded (count x count instances).
func throwCount(level int32) int32 {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

// regionRadius returns the tile half-extent for region kinds: the
// definition's RegionRadius when set, level-derived otherwise.
func regionRadius(inv *invocation) int32 {
	if r := inv.def.Region.Radius; r > 0 {
		return r
	}
	return 1 + inv.level/3
}

// regionLength returns the tile depth of the directed formations
// (rectangle, triangle): the definition's RegionHeight when set,
// level-derived otherwise.
func regionLength(inv *invocation) int32 {
	if h := inv.def.Region.Height; h > 0 {
		return h
	}
	return 2 + inv.level/3
}
