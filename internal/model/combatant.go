package model

// RefKind tags a combatant reference as player or non-player.
type RefKind uint8

const (
	RefPlayer RefKind = iota
	RefNPC
)

// String returns the tag name for logging.
func (k RefKind) String() string {
	if k == RefPlayer {
		return "player"
	}
	return "npc"
}

// Ref identifies a combatant without owning it. Equality is by value
// (tag + id). A Ref must be re-resolved through the registry every tick:
// the combatant behind it may be removed or replaced between ticks.
type Ref struct {
	Kind RefKind
	ID   uint32
}

// NoRef is the zero Ref, used where a target is optional.
var NoRef = Ref{}

// IsZero reports whether the reference points at nothing.
func (r Ref) IsZero() bool {
	return r == NoRef
}

// Allegiance groups combatants for targeting rules.
type Allegiance uint8

const (
	AllegiancePlayer Allegiance = iota
	AllegianceAlly
	AllegianceEnemy
	AllegianceNeutral
)

// String returns the allegiance name for logging.
func (a Allegiance) String() string {
	switch a {
	case AllegiancePlayer:
		return "player"
	case AllegianceAlly:
		return "ally"
	case AllegianceEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// AllegianceMask is a bit set of allegiance classes a projectile may hit.
type AllegianceMask uint8

// Mask builds a mask from allegiance classes.
func Mask(classes ...Allegiance) AllegianceMask {
	var m AllegianceMask
	for _, c := range classes {
		m |= 1 << c
	}
	return m
}

// Contains reports whether the class is in the mask.
func (m AllegianceMask) Contains(a Allegiance) bool {
	return m&(1<<a) != 0
}

// TargetMask returns the set of allegiance classes an attack launched by
// the given class may hit. Players and allies hit enemies; enemies hit
// players and allies; neutrals hit everything that is not neutral.
// With attackAll set the attack hits every class.
func TargetMask(attacker Allegiance, attackAll bool) AllegianceMask {
	if attackAll {
		return Mask(AllegiancePlayer, AllegianceAlly, AllegianceEnemy, AllegianceNeutral)
	}
	switch attacker {
	case AllegiancePlayer, AllegianceAlly:
		return Mask(AllegianceEnemy)
	case AllegianceEnemy:
		return Mask(AllegiancePlayer, AllegianceAlly)
	default:
		return Mask(AllegiancePlayer, AllegianceAlly, AllegianceEnemy)
	}
}

// Combatant is the capability surface the engine needs from a live
// participant. The engine never stores a Combatant across ticks, only Refs.
type Combatant interface {
	Ref() Ref
	Name() string
	Level() int32

	Life() int32
	MaxLife() int32
	SetLife(v int32)
	Mana() int32
	MaxMana() int32
	SetMana(v int32)
	Stamina() int32
	MaxStamina() int32
	SetStamina(v int32)

	// Attack/Defense/Evasion are post-equipment values.
	Attack() int32
	Defense() int32
	Evasion() int32

	Position() Point
	SetPosition(p Point)

	Allegiance() Allegiance
	IsDead() bool

	// Buff attachment ties a live effect instance to the combatant so the
	// instance can be torn down when it expires.
	AttachBuff(spriteID int32)
	DetachBuff(spriteID int32)
	Buffs() []int32

	Status() *StatusSet
}
