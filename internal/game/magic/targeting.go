package magic

import (
	"math"
	"slices"

	"github.com/veleth/moonblade/internal/model"
)

// ClosestEnemy returns the nearest living combatant matching mask,
// skipping the excluded refs. Ties resolve to the earlier-registered
// combatant because iteration follows insertion order.
func (m *Manager) ClosestEnemy(from model.Point, mask model.AllegianceMask, exclude ...model.Ref) (model.Combatant, bool) {
	var best model.Combatant
	bestDist := math.MaxFloat64

	m.source.Each(func(c model.Combatant) bool {
		if c.IsDead() || !mask.Contains(c.Allegiance()) {
			return true
		}
		if slices.Contains(exclude, c.Ref()) {
			return true
		}
		if d := from.DistanceTo(c.Position()); d < bestDist {
			best, bestDist = c, d
		}
		return true
	})
	return best, best != nil
}

// TargetsInView returns every living combatant matching mask within the
// view rectangle around center, in insertion order.
func (m *Manager) TargetsInView(center model.Point, mask model.AllegianceMask) []model.Combatant {
	halfX := float64(m.viewTilesX) * model.TileSize
	halfY := float64(m.viewTilesY) * model.TileSize

	var out []model.Combatant
	m.source.Each(func(c model.Combatant) bool {
		if c.IsDead() || !mask.Contains(c.Allegiance()) {
			return true
		}
		p := c.Position()
		if math.Abs(p.X-center.X) <= halfX && math.Abs(p.Y-center.Y) <= halfY {
			out = append(out, c)
		}
		return true
	})
	return out
}
