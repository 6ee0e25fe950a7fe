package magic

import (
	"slices"

	"github.com/veleth/moonblade/internal/asset"
	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/game/combat"
	"github.com/veleth/moonblade/internal/model"
)

// State is the lifecycle stage of an effect instance. Transitions only
// move forward: Waiting -> Active -> Destroying -> Destroyed.
type State uint8

const (
	// StateWaiting is the pre-spawn delay: no movement, no collision.
	StateWaiting State = iota
	// StateActive is the live stage: moving, animating, collision-checked.
	StateActive
	// StateDestroying plays the vanish animation; no further collision.
	StateDestroying
	// StateDestroyed is removed from the active collection this tick.
	StateDestroyed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	case StateDestroying:
		return "destroying"
	default:
		return "destroyed"
	}
}

// Sprite is one live effect instance: a projectile, aura or area effect
// spawned by an ability invocation. Owned exclusively by the Manager's
// active collection (or its delayed-spawn queue before activation).
type Sprite struct {
	ID    int32
	Owner model.Ref
	// OwnerAllegiance is captured at spawn so targeting keeps working when
	// the owner has been removed mid-flight.
	OwnerAllegiance model.Allegiance

	// Def is the level-resolved copy of the ability definition.
	Def   data.Definition
	Level int32

	Pos  model.Point
	Tile model.Tile // derived, recomputed on every position write
	Dir  model.Vec  // unit vector, or zero for stationary instances
	Dest model.Point

	Velocity float64 // world units per second

	ElapsedMs int32
	Frame     int32

	Anim   asset.AnimMeta
	Vanish asset.AnimMeta

	// Damage is resolved once at spawn from the owner's stats plus
	// equipment, never re-derived per tick.
	Damage combat.Resolved

	// Target is the optional explicit target of the invocation.
	Target model.Ref

	state    State
	endFired bool
	hit      []model.Ref // targets already struck by this pass-through instance

	waitMs       int32
	lifeMs       int32 // 0 = unlimited, bounded by other triggers
	destroyingMs int32
	frameAccumMs int32

	traveled    float64
	trackAfter  float64 // distance before tracking arms
	bouncesLeft int32

	stopAtDest  bool
	followOwner bool
	noCollision bool
	// applyOnSpawn runs the behavior's apply hook at creation instead of
	// on collision (self-buffs, summons, teleports, control binds).
	applyOnSpawn bool
	// buffRef is the combatant a self-buff attached to, so teardown
	// detaches from the right one when the buff landed on an explicit
	// target rather than the owner.
	buffRef model.Ref
	// emitter marks the invisible trail source that drops the real copies.
	emitter      bool
	trailAccumMs int32
	lastDrop     model.Tile
	hasDropped   bool
	hitThisTick  bool
}

// State returns the current lifecycle stage.
func (s *Sprite) State() State { return s.state }

// Waiting reports the pre-spawn delay stage.
func (s *Sprite) Waiting() bool { return s.state == StateWaiting }

// Active reports the live stage.
func (s *Sprite) Active() bool { return s.state == StateActive }

// InDestroy reports the vanish-animation stage.
func (s *Sprite) InDestroy() bool { return s.state == StateDestroying }

// Destroyed reports eligibility for removal.
func (s *Sprite) Destroyed() bool { return s.state == StateDestroyed }

// WaitMs returns the remaining pre-spawn delay.
func (s *Sprite) WaitMs() int32 { return s.waitMs }

// SetPos moves the sprite and recomputes its tile.
func (s *Sprite) SetPos(p model.Point) {
	s.Pos = p
	s.Tile = p.Tile()
}

// HasHit reports whether this instance already struck the target.
func (s *Sprite) HasHit(ref model.Ref) bool {
	return slices.Contains(s.hit, ref)
}

// RecordHit remembers a struck target so pass-through and leaping
// instances never apply twice to the same id.
func (s *Sprite) RecordHit(ref model.Ref) {
	if !s.HasHit(ref) {
		s.hit = append(s.hit, ref)
	}
}

// advanceAnim accumulates frame time and steps the animation. During the
// active stage the animation loops; during destroy it plays the vanish
// cycle once. Returns true when a full cycle completed this call.
func (s *Sprite) advanceAnim(deltaMs int32, meta asset.AnimMeta) bool {
	if meta.FrameCount <= 0 || meta.FrameIntervalMs <= 0 {
		return false
	}
	completed := false
	s.frameAccumMs += deltaMs
	for s.frameAccumMs >= meta.FrameIntervalMs {
		s.frameAccumMs -= meta.FrameIntervalMs
		s.Frame++
		if s.Frame >= meta.FrameCount {
			s.Frame = 0
			completed = true
		}
	}
	return completed
}

// activate moves a waiting sprite into the live stage.
func (s *Sprite) activate() {
	if s.state == StateWaiting {
		s.state = StateActive
	}
}
