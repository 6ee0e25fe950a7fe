package data

import (
	"reflect"
	"testing"

	"github.com/veleth/moonblade/internal/model"
)

const fireballFile = `# Fireball, a staggered line of bolts.
[Init]
Name=Fireball
MoveKind=Line
Speed=240
ManaCost=12
Damage=30
Damage2=5
Cooldown=800
FlyingSound=snd/fireball.wav
StatusKind=poison
StatusDurationMs=3000
StatusProbability=25
PassThrough=1
UnknownKey=whatever

[Level3]
Damage=55
ManaCost=20

[Level5]
Damage=90
PierceWall=1
`

func TestParseDefinition_InitSection(t *testing.T) {
	def, err := ParseDefinition("fireball.ini", []byte(fireballFile))
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}

	if def.Name != "Fireball" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.Kind != MoveLine {
		t.Errorf("Kind = %v, want Line", def.Kind)
	}
	if def.Speed != 240 {
		t.Errorf("Speed = %v", def.Speed)
	}
	if def.ManaCost != 12 || def.Damage != 30 || def.Damage2 != 5 {
		t.Errorf("costs/damage wrong: %+v", def)
	}
	if def.Status.Kind != model.StatusPoison || def.Status.DurationMs != 3000 || def.Status.Probability != 25 {
		t.Errorf("status wrong: %+v", def.Status)
	}
	if !def.PassThrough {
		t.Error("PassThrough should be set")
	}
	if def.FloorDamage != 1 {
		t.Errorf("FloorDamage default = %d, want 1", def.FloorDamage)
	}
}

func TestParseDefinition_UnknownKeysIgnored(t *testing.T) {
	def, err := ParseDefinition("x.ini", []byte("[Init]\nName=X\nBogus=1\nAlsoBogus=yes\n"))
	if err != nil {
		t.Fatalf("unknown keys must not fail the parse: %v", err)
	}
	if def.Name != "X" {
		t.Errorf("Name = %q", def.Name)
	}
}

func TestAtLevel_MergesSparseOverrides(t *testing.T) {
	def, err := ParseDefinition("fireball.ini", []byte(fireballFile))
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}

	l3 := def.AtLevel(3)
	if l3.Damage != 55 || l3.ManaCost != 20 {
		t.Errorf("level 3 merge wrong: Damage=%d ManaCost=%d", l3.Damage, l3.ManaCost)
	}
	// Untouched fields carry over from the base.
	if l3.Speed != 240 || l3.Damage2 != 5 || !l3.PassThrough {
		t.Errorf("level 3 must keep base fields: %+v", l3)
	}

	// No section for level 4: base values as-is.
	l4 := def.AtLevel(4)
	if l4.Damage != 30 {
		t.Errorf("level without overrides must equal base, Damage=%d", l4.Damage)
	}

	l5 := def.AtLevel(5)
	if l5.Damage != 90 || !l5.PierceWall {
		t.Errorf("level 5 merge wrong: %+v", l5)
	}
}

func TestAtLevel_IdempotentAndBaseUntouched(t *testing.T) {
	def, err := ParseDefinition("fireball.ini", []byte(fireballFile))
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}

	a := def.AtLevel(3)
	b := def.AtLevel(3)
	if !reflect.DeepEqual(a, b) {
		t.Error("resolving the same level twice must yield identical output")
	}

	if def.Damage != 30 || def.ManaCost != 12 {
		t.Errorf("cached base was mutated: Damage=%d ManaCost=%d", def.Damage, def.ManaCost)
	}
}

func TestParseMoveKind(t *testing.T) {
	if k, ok := ParseMoveKind("Circle"); !ok || k != MoveCircle {
		t.Errorf("ParseMoveKind(Circle) = %v, %v", k, ok)
	}
	if k, ok := ParseMoveKind("3"); !ok || k != MoveCircle {
		t.Errorf("numeric kind: got %v, %v", k, ok)
	}
	if _, ok := ParseMoveKind("Nonsense"); ok {
		t.Error("unknown kind must report !ok")
	}
}

func TestParseDefinition_BadLevelSection(t *testing.T) {
	if _, err := ParseDefinition("x.ini", []byte("[LevelZero]\nDamage=1\n")); err == nil {
		t.Error("malformed level section must fail")
	}
}
