package data

import "github.com/veleth/moonblade/internal/model"

// StatusPayload describes the condition a hit may inflict.
type StatusPayload struct {
	Kind        model.StatusKind
	DurationMs  int32
	Probability int32 // percent, 0..100
	PoisonLevel int32 // stack level for poison, default 1
}

// RegionParams sizes area/shape kinds, in tiles.
type RegionParams struct {
	Width  int32
	Height int32
	Radius int32
}

// Definition is the immutable parsed configuration of one ability.
// Loaded once per file and cached by path; never mutated after loading.
// Level-specific values are resolved through AtLevel, which merges onto a
// copy and leaves the cached base untouched.
type Definition struct {
	Name string
	Path string
	Kind MoveKind

	// Asset references. The simulation does not depend on their presence.
	ActionFile string
	VanishFile string

	FlyingSound string
	VanishSound string

	// Movement.
	Speed  float64 // world units per second
	LifeMs int32   // 0 = derive from the action animation
	WaitMs int32   // pre-spawn delay applied to every instance

	Cooldown int32 // ms

	// Costs, deducted centrally at invocation.
	ManaCost    int32
	StaminaCost int32
	LifeCost    int32

	// Damage and heal channels.
	Damage      int32 // primary, combined with owner attack at spawn
	Damage2     int32 // secondary
	Damage3     int32 // tertiary
	DamageExt   int32 // extension channel
	ManaDamage  int32
	Heal        int32
	HealMana    int32
	FloorDamage int32 // minimum damage on a successful hit, default 1

	Region RegionParams
	Status StatusPayload

	// Optional flags.
	PassThrough bool // keep flying after a hit, never hit the same target twice
	PierceWall  bool // ignore terrain obstruction
	AttackAll   bool // hit every allegiance class
	Discard     bool // cancel against an opposing discard-instance on the same tile
	Exchange    bool // swap direction/velocity with an opposing exchange-instance
	Trace       bool // re-aim at the nearest enemy once armed

	BounceCount  int32 // leaping hits: damage decrements per bounce
	TraceDelayMs int32 // delay before tracking arms
	TrailGapMs   int32 // ms between dropped trail copies
	ScreenShake  int32

	SummonFile  string // combatant file spawned by Summon kinds
	ExplodeFile string // ability invoked at the impact point

	SelfDamagePercent int32 // percent of max life, rolled once per invocation
	SelfDamageProb    int32 // percent, 0..100
	LifeStealPercent  int32 // percent of realized damage returned as life
	ManaRestorePct    int32 // percent of realized damage returned as mana

	OnKillAbility string // ability file chained when the hit kills
	OnHurtAbility string // ability file the victim retaliates with

	ControlDurationMs int32 // Control kinds: how long the bind lasts

	// levels holds the raw per-level override pairs in file order, keyed by
	// level. Sparse: only levels present in the file appear.
	levels map[int32][]kvPair
}

type kvPair struct {
	key   string
	value string
}

// AtLevel resolves the definition for one ability level: the base values
// with the LevelN override section merged on top. Operates on a copy, so
// the cached base is never mutated and repeated calls are idempotent.
func (d *Definition) AtLevel(level int32) Definition {
	out := *d
	out.levels = nil
	for _, kv := range d.levels[level] {
		applyKey(&out, kv.key, kv.value)
	}
	return out
}

// HasLevel reports whether the file carries an override section for level.
func (d *Definition) HasLevel(level int32) bool {
	_, ok := d.levels[level]
	return ok
}
