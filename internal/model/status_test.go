package model

import "testing"

func TestStatusSet_ApplyAndExpire(t *testing.T) {
	var s StatusSet

	s.Apply(StatusFreeze, 500)
	if !s.Active(StatusFreeze) {
		t.Fatal("freeze should be active")
	}
	if s.CanMove() {
		t.Error("frozen combatant must not move")
	}
	if s.CanAct() {
		t.Error("frozen combatant must not act")
	}

	s.Tick(300)
	if !s.Active(StatusFreeze) {
		t.Error("freeze should survive 300ms of 500ms")
	}
	s.Tick(300)
	if s.Active(StatusFreeze) {
		t.Error("freeze should have expired")
	}
	if !s.CanMove() || !s.CanAct() {
		t.Error("expired condition must release the combatant")
	}
}

func TestStatusSet_ShorterReapplicationIgnored(t *testing.T) {
	var s StatusSet
	s.Apply(StatusPetrify, 1000)
	s.Apply(StatusPetrify, 200)

	s.Tick(500)
	if !s.Active(StatusPetrify) {
		t.Error("shorter re-application must not cut the running timer")
	}
}

func TestStatusSet_PoisonTicks(t *testing.T) {
	var s StatusSet
	s.ApplyPoison(3000, 2)

	var total int32
	for range 3 {
		total += s.Tick(1000)
	}
	if total != 6 {
		t.Errorf("poison level 2 over 3s should deal 6, dealt %d", total)
	}
	if s.Active(StatusPoison) {
		t.Error("poison should have expired")
	}
	if dmg := s.Tick(1000); dmg != 0 {
		t.Errorf("expired poison must not deal damage, dealt %d", dmg)
	}
}

func TestStatusSet_NoMoveStillActs(t *testing.T) {
	var s StatusSet
	s.Apply(StatusNoMove, 500)
	if s.CanMove() {
		t.Error("nomove must block movement")
	}
	if !s.CanAct() {
		t.Error("nomove must not block ability use")
	}
}
