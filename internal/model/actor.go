package model

import "slices"

// Actor is the shared state behind both combatant kinds: vitals with caps,
// combat ratings, position and attached buffs. Player and NPC embed it.
//
// No locking here: per the simulation model the engine is single-threaded
// and all mutation happens inside one update call per frame.
type Actor struct {
	ref        Ref
	name       string
	level      int32
	allegiance Allegiance

	life, maxLife       int32
	mana, maxMana       int32
	stamina, maxStamina int32

	attack, defense, evasion int32

	pos    Point
	buffs  []int32
	status StatusSet
}

// ActorStats bundles the construction-time ratings for an Actor.
type ActorStats struct {
	Level   int32
	Life    int32
	Mana    int32
	Stamina int32
	Attack  int32
	Defense int32
	Evasion int32
}

func newActor(ref Ref, name string, allegiance Allegiance, st ActorStats) Actor {
	if st.Life < 1 {
		st.Life = 1
	}
	return Actor{
		ref:        ref,
		name:       name,
		level:      st.Level,
		allegiance: allegiance,
		life:       st.Life,
		maxLife:    st.Life,
		mana:       st.Mana,
		maxMana:    st.Mana,
		stamina:    st.Stamina,
		maxStamina: st.Stamina,
		attack:     st.Attack,
		defense:    st.Defense,
		evasion:    st.Evasion,
	}
}

func (a *Actor) Ref() Ref               { return a.ref }
func (a *Actor) Name() string           { return a.name }
func (a *Actor) Level() int32           { return a.level }
func (a *Actor) Allegiance() Allegiance { return a.allegiance }

func (a *Actor) Life() int32    { return a.life }
func (a *Actor) MaxLife() int32 { return a.maxLife }

// SetLife clamps to [0, MaxLife].
func (a *Actor) SetLife(v int32) {
	a.life = clamp(v, 0, a.maxLife)
}

func (a *Actor) Mana() int32    { return a.mana }
func (a *Actor) MaxMana() int32 { return a.maxMana }

// SetMana clamps to [0, MaxMana].
func (a *Actor) SetMana(v int32) {
	a.mana = clamp(v, 0, a.maxMana)
}

func (a *Actor) Stamina() int32    { return a.stamina }
func (a *Actor) MaxStamina() int32 { return a.maxStamina }

// SetStamina clamps to [0, MaxStamina].
func (a *Actor) SetStamina(v int32) {
	a.stamina = clamp(v, 0, a.maxStamina)
}

func (a *Actor) Attack() int32  { return a.attack }
func (a *Actor) Defense() int32 { return a.defense }
func (a *Actor) Evasion() int32 { return a.evasion }

func (a *Actor) Position() Point     { return a.pos }
func (a *Actor) SetPosition(p Point) { a.pos = p }

func (a *Actor) IsDead() bool { return a.life <= 0 }

// AttachBuff records a live effect instance as a buff source on this actor.
func (a *Actor) AttachBuff(spriteID int32) {
	if !slices.Contains(a.buffs, spriteID) {
		a.buffs = append(a.buffs, spriteID)
	}
}

// DetachBuff removes the effect instance from the buff list.
func (a *Actor) DetachBuff(spriteID int32) {
	if i := slices.Index(a.buffs, spriteID); i >= 0 {
		a.buffs = slices.Delete(a.buffs, i, i+1)
	}
}

// Buffs returns a copy of the attached effect-instance ids.
func (a *Actor) Buffs() []int32 {
	return slices.Clone(a.buffs)
}

func (a *Actor) Status() *StatusSet { return &a.status }

// Player is a player-controlled combatant. Attack/Defense/Evasion include
// equipment bonuses; only players pay mana and stamina costs.
type Player struct {
	Actor

	equipAttack  int32
	equipDefense int32
	equipEvasion int32
}

// NewPlayer creates a player combatant with the given base stats.
func NewPlayer(id uint32, name string, st ActorStats) *Player {
	return &Player{
		Actor: newActor(Ref{Kind: RefPlayer, ID: id}, name, AllegiancePlayer, st),
	}
}

// SetEquipmentBonus sets the flat attack/defense/evasion contribution of
// worn equipment. Folded into the rating getters.
func (p *Player) SetEquipmentBonus(attack, defense, evasion int32) {
	p.equipAttack = attack
	p.equipDefense = defense
	p.equipEvasion = evasion
}

func (p *Player) Attack() int32  { return p.Actor.Attack() + p.equipAttack }
func (p *Player) Defense() int32 { return p.Actor.Defense() + p.equipDefense }
func (p *Player) Evasion() int32 { return p.Actor.Evasion() + p.equipEvasion }

// NPC is a non-player combatant: monsters, allies and neutral bystanders.
type NPC struct {
	Actor
}

// NewNPC creates a non-player combatant with the given allegiance.
func NewNPC(id uint32, name string, allegiance Allegiance, st ActorStats) *NPC {
	return &NPC{
		Actor: newActor(Ref{Kind: RefNPC, ID: id}, name, allegiance, st),
	}
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
