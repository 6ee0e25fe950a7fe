package magic

import "github.com/veleth/moonblade/internal/model"

// The special-cased kinds: self-buffs, tracking shots, the exclusive
// full-screen mode, and the single-action kinds (summon, transport,
// control, trail) that skip normal collision.

// spawnFollowOwner pins one stationary instance to the owner. The apply
// hook runs immediately at creation, not on collision.
func spawnFollowOwner(m *Manager, inv *invocation) []*Sprite {
	s := m.newSprite(inv, inv.owner.Position(), model.Vec{}, 0, 0)
	s.followOwner = true
	s.noCollision = true
	s.applyOnSpawn = true
	return []*Sprite{s}
}

// spawnFollowEnemy fires one instance that travels straight for a minimum
// distance, then re-aims toward the nearest valid enemy every tick.
func spawnFollowEnemy(m *Manager, inv *invocation) []*Sprite {
	s := m.newSprite(inv, inv.origin, inv.aim, inv.def.Speed, 0)
	s.trackAfter = followEnemyArmDist
	return []*Sprite{s}
}

// spawnFullScreen places the single exclusive super-mode instance on the
// owner. It never collides; its vanish trigger resolves apply against
// every valid target in view.
func spawnFullScreen(m *Manager, inv *invocation) []*Sprite {
	s := m.newSprite(inv, inv.owner.Position(), model.Vec{}, 0, 0)
	s.noCollision = true
	return []*Sprite{s}
}

// singleAction builds the short-lived cosmetic instance for kinds that
// perform one domain action at creation.
func (m *Manager) singleAction(inv *invocation, at model.Point) *Sprite {
	s := m.newSprite(inv, at, model.Vec{}, 0, 0)
	s.noCollision = true
	s.applyOnSpawn = true
	return s
}

// spawnSummon marks the destination; the behavior spawns the combatant.
func spawnSummon(m *Manager, inv *invocation) []*Sprite {
	return []*Sprite{m.singleAction(inv, inv.dest)}
}

// spawnTransport marks the departure point; the behavior relocates the
// owner.
func spawnTransport(m *Manager, inv *invocation) []*Sprite {
	return []*Sprite{m.singleAction(inv, inv.origin)}
}

// spawnControl marks the target; the behavior binds control of it.
func spawnControl(m *Manager, inv *invocation) []*Sprite {
	at := inv.dest
	if inv.target != nil {
		at = inv.target.Position()
	}
	return []*Sprite{m.singleAction(inv, at)}
}

// spawnTrail creates the invisible emitter bound to the owner. The
// update loop drops a stationary copy each time the owner crosses onto a
// new tile with the configured gap elapsed.
func spawnTrail(m *Manager, inv *invocation) []*Sprite {
	s := m.newSprite(inv, inv.owner.Position(), model.Vec{}, 0, 0)
	s.followOwner = true
	s.noCollision = true
	s.emitter = true
	return []*Sprite{s}
}
