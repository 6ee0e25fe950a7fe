// Package combat holds the damage and status formulas shared by every
// effect behavior. Instance damage is resolved once at spawn from the
// owner's stats; per-hit work is only the evasion roll, mitigation and the
// commit to the target.
package combat

import (
	"math/rand/v2"

	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/model"
)

// Resolved is the damage package carried by one effect instance, computed
// at spawn time and never re-derived per tick. The primary channel folds
// in the owner's attack rating (equipment included); the side channels are
// flat ability values.
type Resolved struct {
	Primary   int32
	Secondary int32
	Tertiary  int32
	Extension int32
	Mana      int32

	Floor int32 // minimum damage on a successful hit

	StealPercent   int32 // percent of realized damage returned as owner life
	RestorePercent int32 // percent of realized damage returned as owner mana
}

// ResolveAtSpawn computes the damage package for one instance of def cast
// by owner. def must already be resolved at the cast level.
func ResolveAtSpawn(owner model.Combatant, def *data.Definition) Resolved {
	r := Resolved{
		Secondary:      def.Damage2,
		Tertiary:       def.Damage3,
		Extension:      def.DamageExt,
		Mana:           def.ManaDamage,
		Floor:          def.FloorDamage,
		StealPercent:   def.LifeStealPercent,
		RestorePercent: def.ManaRestorePct,
	}
	if def.Damage > 0 {
		r.Primary = def.Damage
		if owner != nil {
			r.Primary += owner.Attack()
		}
	}
	if r.Floor < 1 {
		r.Floor = 1
	}
	return r
}

// Total returns the combined raw life damage of all channels.
func (r Resolved) Total() int32 {
	return r.Primary + r.Secondary + r.Tertiary + r.Extension
}

// Decay reduces every channel by the given percent, floored at zero.
// Used by leaping abilities that lose power per bounce.
func (r Resolved) Decay(percent int32) Resolved {
	keep := 100 - percent
	if keep < 0 {
		keep = 0
	}
	r.Primary = r.Primary * keep / 100
	r.Secondary = r.Secondary * keep / 100
	r.Tertiary = r.Tertiary * keep / 100
	r.Extension = r.Extension * keep / 100
	r.Mana = r.Mana * keep / 100
	return r
}

// Hit-rate constants, on a 0..1000 scale.
const (
	hitBase       = 900
	hitPerEvasion = 5
	hitMin        = 100
	hitMax        = 980
)

// HitChance returns the chance (0..1000) that an attack lands against the
// given evasion rating. Strictly monotone: more evasion never raises it.
func HitChance(evasion int32) int32 {
	chance := int32(hitBase) - evasion*hitPerEvasion
	if chance < hitMin {
		chance = hitMin
	}
	if chance > hitMax {
		chance = hitMax
	}
	return chance
}

// RollHit rolls the evasion check for a hit against target.
func RollHit(rng *rand.Rand, evasion int32) bool {
	return rng.Int32N(1000) < HitChance(evasion)
}

// Mitigate applies the target's defense to raw damage. A successful hit
// never deals less than floor.
func Mitigate(raw, defense, floor int32) int32 {
	dealt := raw - defense
	if dealt < floor {
		dealt = floor
	}
	return dealt
}

// Commit applies dealt life damage and mana drain to the target and
// returns the life damage actually realized (bounded by remaining life).
// The realized value feeds life-steal and experience accounting.
func Commit(target model.Combatant, dealt, manaDrain int32) int32 {
	realized := min(dealt, target.Life())
	target.SetLife(target.Life() - dealt)
	if manaDrain > 0 {
		target.SetMana(target.Mana() - manaDrain)
	}
	return realized
}

// Strike is the full per-hit sequence: evasion roll, mitigation, commit.
// Returns the realized damage and whether the hit landed.
func Strike(rng *rand.Rand, target model.Combatant, r Resolved) (int32, bool) {
	if !RollHit(rng, target.Evasion()) {
		return 0, false
	}
	dealt := Mitigate(r.Total(), target.Defense(), r.Floor)
	return Commit(target, dealt, r.Mana), true
}
