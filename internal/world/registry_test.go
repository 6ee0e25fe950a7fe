package world

import (
	"testing"

	"github.com/veleth/moonblade/internal/model"
)

func newEnemy(id uint32, x, y float64) *model.NPC {
	n := model.NewNPC(id, "Enemy", model.AllegianceEnemy, model.ActorStats{Level: 3, Life: 50})
	n.SetPosition(model.Point{X: x, Y: y})
	return n
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Add(newEnemy(3, 0, 0))
	r.Add(newEnemy(1, 0, 0))
	r.Add(newEnemy(2, 0, 0))

	var got []uint32
	r.Each(func(c model.Combatant) bool {
		got = append(got, c.Ref().ID)
		return true
	})

	want := []uint32{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iteration order = %v, want %v", got, want)
		}
	}
}

func TestRegistry_ResolveAfterReplace(t *testing.T) {
	r := NewRegistry()
	old := newEnemy(5, 0, 0)
	r.Add(old)

	replacement := newEnemy(5, 100, 100)
	r.Add(replacement)

	c, ok := r.Resolve(model.Ref{Kind: model.RefNPC, ID: 5})
	if !ok {
		t.Fatal("resolve failed")
	}
	if c != model.Combatant(replacement) {
		t.Error("re-resolving a ref must see the replacement combatant")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_OccupantAt(t *testing.T) {
	r := NewRegistry()
	enemy := newEnemy(1, 100, 100)
	r.Add(enemy)

	friend := model.NewPlayer(2, "Hero", model.ActorStats{Level: 5, Life: 100})
	friend.SetPosition(model.Point{X: 100, Y: 100})
	r.Add(friend)

	tile := model.Point{X: 100, Y: 100}.Tile()

	c, ok := r.OccupantAt(tile, model.Mask(model.AllegianceEnemy))
	if !ok || c.Ref() != enemy.Ref() {
		t.Error("enemy mask must find the enemy, not the player")
	}

	if _, ok := r.OccupantAt(tile, model.Mask(model.AllegianceNeutral)); ok {
		t.Error("no neutral stands on the tile")
	}

	enemy.SetLife(0)
	if _, ok := r.OccupantAt(tile, model.Mask(model.AllegianceEnemy)); ok {
		t.Error("dead combatants never occupy tiles")
	}
}

func TestRegistry_TickStatusesPoison(t *testing.T) {
	r := NewRegistry()
	enemy := newEnemy(1, 0, 0)
	enemy.Status().ApplyPoison(2000, 3)
	r.Add(enemy)

	r.TickStatuses(1000)
	if got := enemy.Life(); got != 47 {
		t.Errorf("life after one poison tick = %d, want 47", got)
	}
}

func TestTerrain_Bounds(t *testing.T) {
	terr := NewTerrain(10, 10)

	if terr.TileBlocked(model.Tile{X: 5, Y: 5}) {
		t.Error("fresh terrain is open")
	}

	terr.SetBlocked(model.Tile{X: 5, Y: 5}, true)
	if !terr.TileBlocked(model.Tile{X: 5, Y: 5}) {
		t.Error("tile should be blocked")
	}

	if !terr.TileBlocked(model.Tile{X: -1, Y: 0}) || !terr.TileBlocked(model.Tile{X: 10, Y: 0}) {
		t.Error("out-of-bounds tiles count as blocked")
	}
}
