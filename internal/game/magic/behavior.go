package magic

import (
	"log/slog"

	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/model"
)

// Behavior implements the gameplay consequences for one movement-pattern
// family. The lifecycle hooks are optional: implement Caster, Applier
// and/or Ender as needed. A behavior must be stateless; all per-instance
// state lives on the Sprite.
type Behavior interface {
	Name() string
}

// Caster fires once at invocation, before any instance exists.
// Side effects only.
type Caster interface {
	OnCast(ctx *CastContext)
}

// Applier fires once per (instance, target) collision, once per instance
// for self-targeting kinds, or once per target in view for full-screen
// kinds. It commits damage/heal/status to the target and returns the
// realized damage, which feeds life-steal and experience accounting.
type Applier interface {
	Apply(ctx *HitContext) int32
}

// Ender fires exactly once when an instance becomes destroyed.
type Ender interface {
	OnEnd(ctx *EndContext)
}

// CastContext is handed to OnCast. No instance exists yet.
type CastContext struct {
	M      *Manager
	Owner  model.Combatant
	Def    *data.Definition
	Origin model.Point
	Dest   model.Point
	Target model.Combatant // nil when the invocation has no explicit target
}

// HitContext is handed to Apply.
type HitContext struct {
	M      *Manager
	Sprite *Sprite
	Owner  model.Combatant // nil when the owner left the world mid-flight
	Target model.Combatant
}

// EndContext is handed to OnEnd.
type EndContext struct {
	M      *Manager
	Sprite *Sprite
}

// behaviors maps movement-pattern kind to its behavior. Populated in
// init; RegisterBehavior overrides an entry for extension.
var behaviors = map[data.MoveKind]Behavior{}

// RegisterBehavior installs (or overrides) the behavior for a kind.
// Extension is explicit registration, not subclassing.
func RegisterBehavior(kind data.MoveKind, b Behavior) {
	behaviors[kind] = b
}

// genericProjectile is the fallback for kinds without a registered
// behavior: fly toward the destination, deal damage on impact.
var genericProjectile = &projectileBehavior{}

// behaviorFor resolves the behavior for a kind, falling back to the
// generic projectile. The gap is logged, not fatal.
func behaviorFor(kind data.MoveKind) Behavior {
	if b, ok := behaviors[kind]; ok {
		return b
	}
	slog.Warn("no behavior registered for move kind, using generic projectile", "kind", kind)
	return genericProjectile
}

func init() {
	projectile := genericProjectile
	for kind := data.MoveKind(0); kind.Valid(); kind++ {
		RegisterBehavior(kind, projectile)
	}
	RegisterBehavior(data.MoveFollowOwner, &selfBehavior{})
	RegisterBehavior(data.MoveFullScreen, &fullScreenBehavior{})
	RegisterBehavior(data.MoveSummon, &summonBehavior{})
	RegisterBehavior(data.MoveTransport, &transportBehavior{})
	RegisterBehavior(data.MoveControl, &controlBehavior{})
}
