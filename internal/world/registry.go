// Package world owns the live combatant registry and the terrain grid the
// combat engine queries for collision. It never drives the simulation
// itself: the magic manager calls in once per tick.
package world

import (
	"log/slog"

	"github.com/veleth/moonblade/internal/model"
)

// Registry is the insertion-ordered set of live combatants. Iteration
// order is insertion order and is part of the contract: multi-hit and
// discard/exchange logic in the engine is order-sensitive.
//
// Single-threaded by design, like the rest of the simulation.
type Registry struct {
	order []model.Ref
	byRef map[model.Ref]model.Combatant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byRef: make(map[model.Ref]model.Combatant),
	}
}

// Add registers a combatant. Re-adding an existing Ref replaces the
// combatant in place and keeps its iteration position.
func (r *Registry) Add(c model.Combatant) {
	ref := c.Ref()
	if _, exists := r.byRef[ref]; !exists {
		r.order = append(r.order, ref)
	}
	r.byRef[ref] = c
}

// Remove unregisters the combatant behind ref.
func (r *Registry) Remove(ref model.Ref) {
	if _, exists := r.byRef[ref]; !exists {
		return
	}
	delete(r.byRef, ref)
	for i, o := range r.order {
		if o == ref {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Resolve returns the current combatant behind ref. Callers must resolve
// every tick instead of caching the result.
func (r *Registry) Resolve(ref model.Ref) (model.Combatant, bool) {
	c, ok := r.byRef[ref]
	return c, ok
}

// Each visits every combatant in insertion order. Returning false from fn
// stops the walk.
func (r *Registry) Each(fn func(model.Combatant) bool) {
	for _, ref := range r.order {
		if c, ok := r.byRef[ref]; ok {
			if !fn(c) {
				return
			}
		}
	}
}

// Len returns the number of registered combatants.
func (r *Registry) Len() int {
	return len(r.byRef)
}

// OccupantAt returns the first living combatant standing on the tile whose
// allegiance is in the mask. First means first in insertion order.
func (r *Registry) OccupantAt(tile model.Tile, mask model.AllegianceMask) (model.Combatant, bool) {
	for _, ref := range r.order {
		c, ok := r.byRef[ref]
		if !ok || c.IsDead() {
			continue
		}
		if !mask.Contains(c.Allegiance()) {
			continue
		}
		if c.Position().Tile() == tile {
			return c, true
		}
	}
	return nil, false
}

// TickStatuses advances every combatant's condition timers and applies
// accrued poison damage.
func (r *Registry) TickStatuses(deltaMs int32) {
	r.Each(func(c model.Combatant) bool {
		if c.IsDead() {
			return true
		}
		if poison := c.Status().Tick(deltaMs); poison > 0 {
			c.SetLife(c.Life() - poison)
			if c.IsDead() {
				slog.Debug("combatant died to poison", "ref", c.Ref(), "name", c.Name())
			}
		}
		return true
	})
}
