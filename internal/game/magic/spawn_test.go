package magic

import (
	"testing"

	"github.com/veleth/moonblade/internal/data"
	"github.com/veleth/moonblade/internal/game/combat"
	"github.com/veleth/moonblade/internal/model"
)

// invoke builds the spawner-layer invocation the way UseAbility does,
// letting geometry tests call spawners directly.
func (e *testEnv) invoke(def *data.Definition, level int32, dest model.Point) *invocation {
	resolved := def.AtLevel(level)
	aim := model.Direction(e.hero.Position(), dest)
	if aim.IsZero() {
		aim = Dir32(0)
	}
	return &invocation{
		ownerRef: e.hero.Ref(),
		owner:    e.hero,
		def:      &resolved,
		level:    level,
		origin:   e.hero.Position(),
		dest:     dest,
		damage:   combat.ResolveAtSpawn(e.hero, &resolved),
		aim:      aim,
	}
}

func eastOf(p model.Point) model.Point {
	return p.Add(model.Vec{X: 1, Y: 0}, 10*model.TileSize)
}

func TestSpawnLineStagger(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("barrage")
	def.Kind = data.MoveLine
	inv := e.invoke(def, 3, eastOf(e.hero.Position()))

	sprites := spawnLine(e.m, inv)
	if len(sprites) != 3 {
		t.Fatalf("line level 3 spawned %d, want 3", len(sprites))
	}
	for i, s := range sprites {
		if want := int32(i) * lineStaggerMs; s.WaitMs() != want {
			t.Errorf("instance %d wait = %d, want %d", i, s.WaitMs(), want)
		}
		if s.Dir != sprites[0].Dir {
			t.Errorf("instance %d direction differs", i)
		}
	}
}

func TestSpawnCircleBurst(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("nova")
	def.Kind = data.MoveCircle
	inv := e.invoke(def, 1, eastOf(e.hero.Position()))

	sprites := spawnCircle(e.m, inv)
	if len(sprites) != DirCount32 {
		t.Fatalf("circle spawned %d, want %d", len(sprites), DirCount32)
	}
	// Vertical instances travel at half the horizontal speed so the ring
	// stays round on screen.
	if got := sprites[0].Velocity; got != def.Speed*0.5 {
		t.Errorf("south velocity = %v, want %v", got, def.Speed*0.5)
	}
	if got := sprites[8].Velocity; got != def.Speed {
		t.Errorf("west velocity = %v, want %v", got, def.Speed)
	}
	for _, s := range sprites {
		if s.WaitMs() != 0 {
			t.Errorf("circle instance delayed by %d", s.WaitMs())
		}
	}
}

func TestSpawnSectorGrowsByLevel(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("fan")
	def.Kind = data.MoveSector

	if got := len(spawnSector(e.m, e.invoke(def, 1, eastOf(e.hero.Position())))); got != 3 {
		t.Errorf("sector level 1 spawned %d, want 3", got)
	}
	if got := len(spawnSector(e.m, e.invoke(def, 3, eastOf(e.hero.Position())))); got != 5 {
		t.Errorf("sector level 3 spawned %d, want 5", got)
	}
}

func TestSpawnVShapeOffsets(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("talons")
	def.Kind = data.MoveVShape
	inv := e.invoke(def, 1, eastOf(e.hero.Position()))

	sprites := spawnVShape(e.m, inv)
	if len(sprites) != 3 {
		t.Fatalf("v-shape level 1 spawned %d, want 3", len(sprites))
	}
	center := sprites[0]
	if center.Pos != inv.origin {
		t.Errorf("center instance at %v, want origin %v", center.Pos, inv.origin)
	}
	// Side instances sit one tile to either side, perpendicular to an
	// eastward flight, so they differ in Y only.
	for _, s := range sprites[1:] {
		if s.Pos.X != center.Pos.X {
			t.Errorf("side instance shifted along the flight axis: %v", s.Pos)
		}
		if d := s.Pos.Y - center.Pos.Y; d != vShapeSpacing && d != -vShapeSpacing {
			t.Errorf("side offset = %v, want +-%d", d, int(vShapeSpacing))
		}
	}
}

func TestSpawnThrowGrid(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("rain")
	def.Kind = data.MoveThrow
	dest := model.Tile{X: 20, Y: 20}.Center()
	inv := e.invoke(def, 2, dest)

	sprites := spawnThrow(e.m, inv)
	if len(sprites) != 4 {
		t.Fatalf("throw level 2 spawned %d, want 4", len(sprites))
	}
	seen := make(map[model.Point]bool)
	for _, s := range sprites {
		if !s.stopAtDest {
			t.Errorf("throw instance does not stop at its destination")
		}
		if s.Pos != inv.origin {
			t.Errorf("throw instance starts at %v, want origin", s.Pos)
		}
		if seen[s.Dest] {
			t.Errorf("duplicate destination %v", s.Dest)
		}
		seen[s.Dest] = true
	}
}

func TestSpawnHeartDelays(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("heart")
	def.Kind = data.MoveHeart
	sprites := spawnHeart(e.m, e.invoke(def, 1, eastOf(e.hero.Position())))

	if len(sprites) != DirCount32 {
		t.Fatalf("heart spawned %d, want %d", len(sprites), DirCount32)
	}
	if sprites[0].WaitMs() != 0 {
		t.Errorf("south instance delayed by %d", sprites[0].WaitMs())
	}
	if want := int32(16) * heartStepMs; sprites[16].WaitMs() != want {
		t.Errorf("north delay = %d, want %d", sprites[16].WaitMs(), want)
	}
	for i := 1; i < DirCount32/2; i++ {
		if sprites[i].WaitMs() != sprites[DirCount32-i].WaitMs() {
			t.Errorf("heart delays asymmetric at %d: %d vs %d",
				i, sprites[i].WaitMs(), sprites[DirCount32-i].WaitMs())
		}
	}
}

func TestSpawnSpiralDelays(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("vortex")
	def.Kind = data.MoveSpiral
	sprites := spawnSpiral(e.m, e.invoke(def, 1, eastOf(e.hero.Position())))

	if len(sprites) != DirCount32 {
		t.Fatalf("spiral spawned %d, want %d", len(sprites), DirCount32)
	}
	for i, s := range sprites {
		if want := int32(i) * spiralStepMs; s.WaitMs() != want {
			t.Errorf("spiral delay %d = %d, want %d", i, s.WaitMs(), want)
		}
	}
	// The first instance flies along the quantized aim: east here.
	if !vecClose(sprites[0].Dir, Dir32(24)) {
		t.Errorf("spiral start direction = %v, want east", sprites[0].Dir)
	}
}

func TestSpawnWallAndRegionCounts(t *testing.T) {
	e := newTestEnv(0)
	dest := model.Tile{X: 20, Y: 20}.Center()

	cases := []struct {
		kind data.MoveKind
		fn   spawnFunc
		want int
	}{
		{data.MoveFixedWall, spawnFixedWall, 3},
		{data.MoveRegionSquare, spawnRegionSquare, 9},
		{data.MoveRegionCross, spawnRegionCross, 5},
		{data.MoveRegionRectangle, spawnRegionRectangle, 6},
		{data.MoveRegionTriangle, spawnRegionTriangle, 4},
	}
	for _, c := range cases {
		def := flyDef(c.kind.String())
		def.Kind = c.kind
		sprites := c.fn(e.m, e.invoke(def, 1, dest))
		if len(sprites) != c.want {
			t.Errorf("%v level 1 spawned %d, want %d", c.kind, len(sprites), c.want)
		}
		seen := make(map[model.Tile]bool)
		for _, s := range sprites {
			if seen[s.Tile] {
				t.Errorf("%v placed two instances on %v", c.kind, s.Tile)
			}
			seen[s.Tile] = true
		}
	}
}

func TestRegionParamsOverrideFormationSize(t *testing.T) {
	e := newTestEnv(0)
	dest := model.Tile{X: 20, Y: 20}.Center()

	cases := []struct {
		name   string
		kind   data.MoveKind
		fn     spawnFunc
		region data.RegionParams
		want   int
	}{
		{"wide wall", data.MoveFixedWall, spawnFixedWall, data.RegionParams{Width: 7}, 7},
		{"big square", data.MoveRegionSquare, spawnRegionSquare, data.RegionParams{Radius: 2}, 25},
		{"cross reach", data.MoveRegionCross, spawnRegionCross, data.RegionParams{Radius: 3}, 13},
		{"long rectangle", data.MoveRegionRectangle, spawnRegionRectangle, data.RegionParams{Width: 5, Height: 4}, 20},
		{"deep triangle", data.MoveRegionTriangle, spawnRegionTriangle, data.RegionParams{Height: 3}, 9},
	}
	for _, c := range cases {
		def := flyDef(c.name)
		def.Kind = c.kind
		def.Region = c.region
		sprites := c.fn(e.m, e.invoke(def, 1, dest))
		if len(sprites) != c.want {
			t.Errorf("%s spawned %d instances, want %d", c.name, len(sprites), c.want)
		}
	}
}

func TestSpawnFlyQuantizesTo8Way(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("dart")
	def.Kind = data.MoveFly
	// Slightly off east still flies exactly east.
	dest := e.hero.Position().Add(model.Vec{X: 1, Y: 0.1}.Normalize(), 10*model.TileSize)

	sprites := spawnFly(e.m, e.invoke(def, 1, dest))
	if len(sprites) != 1 {
		t.Fatalf("fly spawned %d, want 1", len(sprites))
	}
	if !vecClose(sprites[0].Dir, model.Vec{X: 1, Y: 0}) {
		t.Errorf("fly direction = %v, want east", sprites[0].Dir)
	}
}

func TestSpawnFollowOwnerFlags(t *testing.T) {
	e := newTestEnv(0)
	def := flyDef("aura")
	def.Kind = data.MoveFollowOwner
	def.Speed = 0

	sprites := spawnFollowOwner(e.m, e.invoke(def, 1, e.hero.Position()))
	if len(sprites) != 1 {
		t.Fatalf("follow-owner spawned %d, want 1", len(sprites))
	}
	s := sprites[0]
	if !s.followOwner || !s.noCollision || !s.applyOnSpawn {
		t.Errorf("follow-owner flags = %v %v %v", s.followOwner, s.noCollision, s.applyOnSpawn)
	}
}

func TestStationaryLifetimeFollowsAnimation(t *testing.T) {
	e := newTestEnv(0)
	def := &data.Definition{Name: "mark", Path: "mark.ini", Kind: data.MoveFixedPoint}
	sprites := spawnFixedPoint(e.m, e.invoke(def, 1, model.Tile{X: 9, Y: 9}.Center()))

	// No explicit lifetime: one placeholder animation cycle.
	if got := sprites[0].lifeMs; got != sprites[0].Anim.DurationMs() {
		t.Errorf("stationary lifetime = %d, want %d", got, sprites[0].Anim.DurationMs())
	}
}
