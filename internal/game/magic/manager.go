// Package magic runs the ability simulation: invocations become effect
// instances, instances advance on a fixed tick, collisions resolve into
// damage, status, summons and teleports. Single-threaded by design: the
// owning loop calls UseAbility and Update, renderers read Sprites between
// ticks.
package magic

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/veleth/moonblade/internal/asset"
	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/game/combat"
	"github.com/veleth/moonblade/internal/model"
)

// CollisionQuery answers the per-tick world questions: terrain blocking
// and tile occupancy filtered by allegiance.
type CollisionQuery interface {
	TileBlocked(t model.Tile) bool
	OccupantAt(t model.Tile, mask model.AllegianceMask) (model.Combatant, bool)
}

// CombatantSource resolves refs to live combatants and iterates them in
// insertion order.
type CombatantSource interface {
	Resolve(ref model.Ref) (model.Combatant, bool)
	Each(fn func(c model.Combatant) bool)
}

// FXSink receives the presentation side effects the simulation does not
// own: sounds and screen shake.
type FXSink interface {
	PlaySound(path string)
	ShakeScreen(strength int32)
}

// SummonFunc materializes a summoned combatant from its file.
type SummonFunc func(owner model.Combatant, file string, at model.Point)

// ControlFunc binds control of target to owner for the given duration.
type ControlFunc func(owner, target model.Combatant, durationMs int32)

type nopFX struct{}

func (nopFX) PlaySound(string)  {}
func (nopFX) ShakeScreen(int32) {}

// Deps wires the Manager into the world. Source and Collision are
// required; everything else has a usable default.
type Deps struct {
	Source    CombatantSource
	Collision CollisionQuery
	Anims     *asset.Cache
	Store     *data.Store
	FX        FXSink
	RNG       *rand.Rand

	// MaxActive caps the live instance count; exclusive and owner-bound
	// kinds bypass it. 0 means the default.
	MaxActive int

	// View half-extents in tiles for full-screen resolution, 0 = default.
	ViewTilesX int32
	ViewTilesY int32

	Summon  SummonFunc
	Control ControlFunc
}

// Sizing defaults.
const (
	defaultMaxActive   = 128
	defaultViewTilesX  = 13
	defaultViewTilesY  = 10
	bounceDecayPercent = 20
)

// Invocation errors. Callers may treat all of them as "nothing happened".
var (
	ErrOwnerGone        = errors.New("magic: owner not in world")
	ErrOwnerDead        = errors.New("magic: owner is dead")
	ErrOwnerBound       = errors.New("magic: owner cannot act")
	ErrOnCooldown       = errors.New("magic: ability on cooldown")
	ErrInsufficientCost = errors.New("magic: insufficient resources")
)

type cooldownKey struct {
	owner model.Ref
	path  string
}

type delayedSpawn struct {
	remainMs int32
	sprite   *Sprite
}

// Manager owns every live effect instance and drives the fixed-step
// simulation. Not safe for concurrent use.
type Manager struct {
	source  CombatantSource
	collide CollisionQuery
	anims   *asset.Cache
	store   *data.Store
	fx      FXSink
	rng     *rand.Rand

	active  []*Sprite // insertion order, compacted each tick
	delayed []delayedSpawn

	nextID       int32
	maxActive    int
	viewTilesX   int32
	viewTilesY   int32
	fullScreenID int32 // 0 = no exclusive instance live

	cooldowns map[cooldownKey]int32

	summon  SummonFunc
	control ControlFunc
}

// NewManager builds a Manager from deps, filling defaults.
func NewManager(deps Deps) *Manager {
	if deps.FX == nil {
		deps.FX = nopFX{}
	}
	if deps.RNG == nil {
		seed := uint64(time.Now().UnixNano())
		deps.RNG = rand.New(rand.NewPCG(seed, seed>>32))
	}
	if deps.MaxActive <= 0 {
		deps.MaxActive = defaultMaxActive
	}
	if deps.ViewTilesX <= 0 {
		deps.ViewTilesX = defaultViewTilesX
	}
	if deps.ViewTilesY <= 0 {
		deps.ViewTilesY = defaultViewTilesY
	}
	if deps.Anims == nil {
		deps.Anims = asset.NewCache(nil)
	}
	return &Manager{
		source:     deps.Source,
		collide:    deps.Collision,
		anims:      deps.Anims,
		store:      deps.Store,
		fx:         deps.FX,
		rng:        deps.RNG,
		maxActive:  deps.MaxActive,
		viewTilesX: deps.ViewTilesX,
		viewTilesY: deps.ViewTilesY,
		cooldowns:  make(map[cooldownKey]int32),
		summon:     deps.Summon,
		control:    deps.Control,
	}
}

// Sprites returns the live instance collection in insertion order. The
// slice is owned by the Manager: read only, valid until the next Update.
func (m *Manager) Sprites() []*Sprite { return m.active }

// ActiveCount returns the number of live instances, pending ones included.
func (m *Manager) ActiveCount() int { return len(m.active) + len(m.delayed) }

// Reset drops every instance, pending spawn and cooldown without firing
// end hooks. For scenario boundaries, not for gameplay.
func (m *Manager) Reset() {
	m.active = m.active[:0]
	m.delayed = m.delayed[:0]
	m.fullScreenID = 0
	m.nextID = 0
	clear(m.cooldowns)
}

// exemptFromCap reports whether a kind bypasses the active-instance cap
// and always spawns. These kinds carry gameplay-critical guarantees a
// dropped spawn would break.
func exemptFromCap(kind data.MoveKind) bool {
	switch kind {
	case data.MoveFollowOwner, data.MoveFullScreen,
		data.MoveTransport, data.MoveControl, data.MoveTrail:
		return true
	}
	return false
}

// UseAbility invokes one ability: validates the owner, pays costs, runs
// the cast hook and spawns the instance set for the definition's kind.
// def is the cached base; the level section is resolved here.
func (m *Manager) UseAbility(owner model.Ref, def *data.Definition, level int32, origin, dest model.Point, target model.Ref) error {
	caster, ok := m.source.Resolve(owner)
	if !ok {
		return fmt.Errorf("use %s: %w", def.Path, ErrOwnerGone)
	}
	if caster.IsDead() {
		return fmt.Errorf("use %s: %w", def.Path, ErrOwnerDead)
	}
	if !caster.Status().CanAct() {
		return fmt.Errorf("use %s: %w", def.Path, ErrOwnerBound)
	}

	key := cooldownKey{owner: owner, path: def.Path}
	if m.cooldowns[key] > 0 {
		return fmt.Errorf("use %s: %w", def.Path, ErrOnCooldown)
	}

	resolved := def.AtLevel(level)

	// One exclusive instance at a time. A second invocation is a silent
	// no-op, not an error: the world state is exactly as requested.
	if resolved.Kind == data.MoveFullScreen && m.fullScreenID != 0 {
		slog.Debug("full-screen ability already live, skipping", "ability", resolved.Name, "owner", owner)
		return nil
	}

	if err := m.payCosts(caster, &resolved); err != nil {
		return fmt.Errorf("use %s: %w", resolved.Path, err)
	}

	var tgt model.Combatant
	if !target.IsZero() {
		tgt, _ = m.source.Resolve(target)
	}

	b := behaviorFor(resolved.Kind)
	if hook, ok := b.(Caster); ok {
		hook.OnCast(&CastContext{M: m, Owner: caster, Def: &resolved, Origin: origin, Dest: dest, Target: tgt})
	}

	aim := model.Direction(origin, dest)
	if aim.IsZero() {
		aim = Dir32(0) // south
	}
	inv := &invocation{
		ownerRef: owner,
		owner:    caster,
		def:      &resolved,
		level:    level,
		origin:   origin,
		dest:     dest,
		target:   tgt,
		damage:   combat.ResolveAtSpawn(caster, &resolved),
		aim:      aim,
	}

	sprites := spawnerFor(resolved.Kind)(m, inv)
	exempt := exemptFromCap(resolved.Kind)
	placed := 0
	for _, s := range sprites {
		if !exempt && m.ActiveCount() >= m.maxActive {
			slog.Debug("active instance cap reached", "ability", resolved.Name, "dropped", len(sprites)-placed)
			break
		}
		m.place(s)
		placed++
		if resolved.Kind == data.MoveFullScreen {
			m.fullScreenID = s.ID
		}
		if s.applyOnSpawn {
			m.applySpawnHook(s, caster, tgt, b)
		}
	}
	if placed == 0 {
		return nil
	}

	if resolved.FlyingSound != "" {
		m.fx.PlaySound(resolved.FlyingSound)
	}
	if resolved.ScreenShake > 0 {
		m.fx.ShakeScreen(resolved.ScreenShake)
	}
	m.rollSelfDamage(caster, &resolved)
	if resolved.Cooldown > 0 {
		m.cooldowns[key] = resolved.Cooldown
	}

	slog.Debug("ability invoked",
		"ability", resolved.Name,
		"kind", resolved.Kind,
		"level", level,
		"owner", owner,
		"instances", placed)
	return nil
}

// payCosts deducts the invocation costs, refusing the cast when mana or
// stamina would go negative. Only players run on mana and stamina pools;
// NPC casts skip both. Life cost is always payable; it can kill.
func (m *Manager) payCosts(caster model.Combatant, def *data.Definition) error {
	if caster.Ref().Kind == model.RefPlayer {
		if def.ManaCost > 0 && caster.Mana() < def.ManaCost {
			return fmt.Errorf("%w: mana %d < %d", ErrInsufficientCost, caster.Mana(), def.ManaCost)
		}
		if def.StaminaCost > 0 && caster.Stamina() < def.StaminaCost {
			return fmt.Errorf("%w: stamina %d < %d", ErrInsufficientCost, caster.Stamina(), def.StaminaCost)
		}
		if def.ManaCost > 0 {
			caster.SetMana(caster.Mana() - def.ManaCost)
		}
		if def.StaminaCost > 0 {
			caster.SetStamina(caster.Stamina() - def.StaminaCost)
		}
	}
	if def.LifeCost > 0 {
		caster.SetLife(caster.Life() - def.LifeCost)
	}
	return nil
}

// place inserts a new sprite into the active list or, when it carries a
// spawn delay, the delayed queue.
func (m *Manager) place(s *Sprite) {
	if s.waitMs > 0 {
		m.delayed = append(m.delayed, delayedSpawn{remainMs: s.waitMs, sprite: s})
		return
	}
	s.activate()
	m.active = append(m.active, s)
}

// applySpawnHook runs the apply hook for instances that act at creation:
// self-buffs default to the owner, summon/transport/control act through
// their behavior directly. Control binds never fall back to the caster;
// without a real target they are a no-op.
func (m *Manager) applySpawnHook(s *Sprite, caster, tgt model.Combatant, b Behavior) {
	applier, ok := b.(Applier)
	if !ok {
		return
	}
	target := tgt
	if target == nil && s.Def.Kind != data.MoveControl {
		target = caster
	}
	applier.Apply(&HitContext{M: m, Sprite: s, Owner: caster, Target: target})
}

// rollSelfDamage applies the recoil roll once per invocation, regardless
// of how many instances spawned.
func (m *Manager) rollSelfDamage(caster model.Combatant, def *data.Definition) {
	if def.SelfDamagePercent <= 0 || def.SelfDamageProb <= 0 {
		return
	}
	if m.rng.Int32N(100) >= def.SelfDamageProb {
		return
	}
	dmg := caster.MaxLife() * def.SelfDamagePercent / 100
	if dmg < 1 {
		dmg = 1
	}
	caster.SetLife(caster.Life() - dmg)
	slog.Debug("ability recoil", "ability", def.Name, "owner", caster.Ref(), "damage", dmg)
}

// Update advances the simulation by one fixed step. Instances spawned
// during this tick (delayed activations, chained abilities) start moving
// next tick.
func (m *Manager) Update(deltaMs int32) {
	m.tickCooldowns(deltaMs)
	m.drainDelayed(deltaMs)

	n := len(m.active)
	for i := 0; i < n; i++ {
		m.updateSprite(m.active[i], deltaMs)
	}
	m.resolvePairs(m.active[:n])
	m.compact()
}

func (m *Manager) tickCooldowns(deltaMs int32) {
	for k, remain := range m.cooldowns {
		remain -= deltaMs
		if remain <= 0 {
			delete(m.cooldowns, k)
		} else {
			m.cooldowns[k] = remain
		}
	}
}

// drainDelayed counts down pending spawns and activates the due ones.
func (m *Manager) drainDelayed(deltaMs int32) {
	kept := m.delayed[:0]
	for _, d := range m.delayed {
		d.remainMs -= deltaMs
		if d.remainMs > 0 {
			kept = append(kept, d)
			continue
		}
		d.sprite.activate()
		m.active = append(m.active, d.sprite)
	}
	m.delayed = kept
}

// compact removes destroyed instances, preserving insertion order.
func (m *Manager) compact() {
	kept := m.active[:0]
	for _, s := range m.active {
		if !s.Destroyed() {
			kept = append(kept, s)
		}
	}
	m.active = kept
}

// updateSprite advances one instance by deltaMs: animation, lifetime,
// following, tracking, movement and collision.
func (m *Manager) updateSprite(s *Sprite, deltaMs int32) {
	s.hitThisTick = false

	if s.InDestroy() {
		s.destroyingMs += deltaMs
		s.advanceAnim(deltaMs, s.Vanish)
		if s.destroyingMs >= s.Vanish.DurationMs() {
			m.finishDestroy(s)
		}
		return
	}
	if !s.Active() {
		return
	}

	s.ElapsedMs += deltaMs

	if s.followOwner {
		owner, ok := m.source.Resolve(s.Owner)
		if !ok || owner.IsDead() {
			m.beginDestroy(s)
			return
		}
		s.SetPos(owner.Position())
		if s.emitter {
			m.emitTrail(s, deltaMs)
		}
	}

	s.advanceAnim(deltaMs, s.Anim)

	if s.lifeMs > 0 && s.ElapsedMs >= s.lifeMs {
		m.beginDestroy(s)
		return
	}

	m.track(s)

	if s.Velocity > 0 && !s.Dir.IsZero() {
		if m.move(s, deltaMs) {
			return
		}
	}

	if s.noCollision {
		return
	}
	mask := model.TargetMask(s.OwnerAllegiance, s.Def.AttackAll)
	occ, ok := m.collide.OccupantAt(s.Tile, mask)
	if !ok || occ.Ref() == s.Owner || s.HasHit(occ.Ref()) {
		return
	}
	m.applyHit(s, occ)
}

// track re-aims an armed tracking instance at the nearest valid enemy.
func (m *Manager) track(s *Sprite) {
	if !s.Def.Trace && s.trackAfter == 0 {
		return
	}
	armed := false
	switch {
	case s.trackAfter > 0:
		armed = s.traveled >= s.trackAfter
	case s.Def.TraceDelayMs > 0:
		armed = s.ElapsedMs >= s.Def.TraceDelayMs
	default:
		armed = true
	}
	if !armed {
		return
	}
	mask := model.TargetMask(s.OwnerAllegiance, s.Def.AttackAll)
	enemy, ok := m.ClosestEnemy(s.Pos, mask, append([]model.Ref{s.Owner}, s.hit...)...)
	if !ok {
		return
	}
	s.Dir = model.Direction(s.Pos, enemy.Position())
}

// move integrates one step. Returns true when the step terminated the
// instance (arrival or terrain).
func (m *Manager) move(s *Sprite, deltaMs int32) bool {
	step := s.Velocity * float64(deltaMs) / 1000
	if s.stopAtDest {
		remain := s.Pos.DistanceTo(s.Dest)
		if step >= remain {
			s.SetPos(s.Dest)
			s.traveled += remain
			if s.Def.ExplodeFile != "" {
				m.chainAbility(s.Owner, s.Def.ExplodeFile, s.Level, s.Dest, s.Dest, model.NoRef)
			}
			m.beginDestroy(s)
			return true
		}
	}
	s.SetPos(s.Pos.Add(s.Dir, step))
	s.traveled += step

	if !s.Def.PierceWall && !s.noCollision && m.collide.TileBlocked(s.Tile) {
		m.beginDestroy(s)
		return true
	}
	return false
}

// emitTrail drops a stationary copy of the emitter's definition each time
// the owner crosses onto a new tile with the configured gap elapsed.
func (m *Manager) emitTrail(s *Sprite, deltaMs int32) {
	gap := s.Def.TrailGapMs
	if gap <= 0 {
		gap = defaultTrailGapMs
	}
	s.trailAccumMs += deltaMs
	if s.trailAccumMs < gap {
		return
	}
	if s.hasDropped && s.Tile == s.lastDrop {
		return
	}
	s.trailAccumMs = 0
	s.lastDrop = s.Tile
	s.hasDropped = true

	m.nextID++
	drop := &Sprite{
		ID:              m.nextID,
		Owner:           s.Owner,
		OwnerAllegiance: s.OwnerAllegiance,
		Def:             s.Def,
		Level:           s.Level,
		Anim:            s.Anim,
		Vanish:          s.Vanish,
		Damage:          s.Damage,
	}
	drop.SetPos(s.Tile.Center())
	drop.lifeMs = trailCopyLifeMs
	drop.activate()
	m.active = append(m.active, drop)
}

// applyHit resolves one instance-combatant collision: status first, then
// the behavior's apply hook, then steal/restore, chains and the
// pass-through / bounce / destroy decision.
func (m *Manager) applyHit(s *Sprite, target model.Combatant) {
	s.hitThisTick = true
	owner, _ := m.source.Resolve(s.Owner)

	if s.Def.Status.Kind != model.StatusNone {
		combat.ApplyStatus(m.rng, target, s.Def.Status)
	}

	var realized int32
	if applier, ok := behaviorFor(s.Def.Kind).(Applier); ok {
		realized = applier.Apply(&HitContext{M: m, Sprite: s, Owner: owner, Target: target})
	}

	if realized > 0 && owner != nil && !owner.IsDead() {
		if p := s.Damage.StealPercent; p > 0 {
			owner.SetLife(owner.Life() + realized*p/100)
		}
		if p := s.Damage.RestorePercent; p > 0 {
			owner.SetMana(owner.Mana() + realized*p/100)
		}
	}

	if s.Def.ExplodeFile != "" {
		m.chainAbility(s.Owner, s.Def.ExplodeFile, s.Level, target.Position(), target.Position(), model.NoRef)
	}
	if target.IsDead() {
		if s.Def.OnKillAbility != "" {
			m.chainAbility(s.Owner, s.Def.OnKillAbility, s.Level, target.Position(), target.Position(), model.NoRef)
		}
	} else if s.Def.OnHurtAbility != "" && owner != nil {
		// The victim retaliates toward the attacker.
		m.chainAbility(target.Ref(), s.Def.OnHurtAbility, s.Level, target.Position(), owner.Position(), s.Owner)
	}

	switch {
	case s.Def.PassThrough:
		s.RecordHit(target.Ref())
	case s.bouncesLeft > 0:
		m.bounce(s, target)
	default:
		m.beginDestroy(s)
	}
}

// bounce redirects a leaping instance toward the next closest enemy with
// decayed damage, or destroys it when no further target exists.
func (m *Manager) bounce(s *Sprite, struck model.Combatant) {
	s.RecordHit(struck.Ref())
	s.bouncesLeft--
	s.Damage = s.Damage.Decay(bounceDecayPercent)

	mask := model.TargetMask(s.OwnerAllegiance, s.Def.AttackAll)
	next, ok := m.ClosestEnemy(s.Pos, mask, append([]model.Ref{s.Owner}, s.hit...)...)
	if !ok {
		m.beginDestroy(s)
		return
	}
	s.Dir = model.Direction(s.Pos, next.Position())
}

// resolvePairs handles discard and exchange between opposing instances
// sharing a tile. Each instance participates in at most one pair per
// tick; instances that already struck a combatant this tick are out.
func (m *Manager) resolvePairs(sprites []*Sprite) {
	for i, a := range sprites {
		if !a.Active() || a.hitThisTick || a.noCollision {
			continue
		}
		if !a.Def.Discard && !a.Def.Exchange {
			continue
		}
		for _, b := range sprites[i+1:] {
			if !b.Active() || b.hitThisTick || b.noCollision {
				continue
			}
			if a.Tile != b.Tile || a.OwnerAllegiance == b.OwnerAllegiance {
				continue
			}
			switch {
			case a.Def.Discard && b.Def.Discard:
				a.hitThisTick, b.hitThisTick = true, true
				m.beginDestroy(a)
				m.beginDestroy(b)
			case a.Def.Exchange && b.Def.Exchange:
				a.hitThisTick, b.hitThisTick = true, true
				a.Dir, b.Dir = b.Dir, a.Dir
				a.Velocity, b.Velocity = b.Velocity, a.Velocity
			default:
				continue
			}
			break
		}
	}
}

// beginDestroy moves an instance into the vanish stage. Full-screen
// instances resolve their area apply here, at the moment of vanishing.
func (m *Manager) beginDestroy(s *Sprite) {
	if s.state != StateWaiting && s.state != StateActive {
		return
	}
	if s.Def.Kind == data.MoveFullScreen && s.ID == m.fullScreenID {
		m.resolveFullScreen(s)
	}
	s.state = StateDestroying
	s.destroyingMs = 0
	s.Frame = 0
	s.frameAccumMs = 0
	if s.Def.VanishSound != "" {
		m.fx.PlaySound(s.Def.VanishSound)
	}
	if s.Vanish.DurationMs() <= 0 || s.Def.Kind == data.MoveFullScreen {
		m.finishDestroy(s)
	}
}

// resolveFullScreen applies the exclusive instance against every valid
// target in view, once each.
func (m *Manager) resolveFullScreen(s *Sprite) {
	owner, _ := m.source.Resolve(s.Owner)
	applier, _ := behaviorFor(s.Def.Kind).(Applier)
	mask := model.TargetMask(s.OwnerAllegiance, s.Def.AttackAll)

	for _, target := range m.TargetsInView(s.Pos, mask) {
		if target.Ref() == s.Owner || s.HasHit(target.Ref()) {
			continue
		}
		s.RecordHit(target.Ref())
		if s.Def.Status.Kind != model.StatusNone {
			combat.ApplyStatus(m.rng, target, s.Def.Status)
		}
		if applier == nil {
			continue
		}
		realized := applier.Apply(&HitContext{M: m, Sprite: s, Owner: owner, Target: target})
		if realized > 0 && owner != nil && !owner.IsDead() {
			if p := s.Damage.StealPercent; p > 0 {
				owner.SetLife(owner.Life() + realized*p/100)
			}
			if p := s.Damage.RestorePercent; p > 0 {
				owner.SetMana(owner.Mana() + realized*p/100)
			}
		}
	}
}

// finishDestroy marks an instance destroyed and fires its end hook
// exactly once.
func (m *Manager) finishDestroy(s *Sprite) {
	s.state = StateDestroyed
	if s.ID == m.fullScreenID {
		m.fullScreenID = 0
	}
	if s.endFired {
		return
	}
	s.endFired = true
	if ender, ok := behaviorFor(s.Def.Kind).(Ender); ok {
		ender.OnEnd(&EndContext{M: m, Sprite: s})
	}
}

// chainAbility invokes a follow-up ability from the definition cache.
// Best effort: a file that was never preloaded is skipped with a debug
// log, never a blocking load mid-tick.
func (m *Manager) chainAbility(caster model.Ref, path string, level int32, origin, dest model.Point, target model.Ref) {
	if m.store == nil {
		return
	}
	def, ok := m.store.Cached(path)
	if !ok {
		slog.Debug("chained ability not preloaded, skipping", "path", path)
		return
	}
	if err := m.UseAbility(caster, def, level, origin, dest, target); err != nil {
		slog.Debug("chained ability failed", "path", path, "err", err)
	}
}
