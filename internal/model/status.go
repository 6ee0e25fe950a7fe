package model

// StatusKind is a crowd-control or damage-over-time condition a hit may
// inflict. Closed set; the zero value means no status.
type StatusKind uint8

const (
	StatusNone StatusKind = iota
	StatusFreeze
	StatusPoison
	StatusPetrify
	StatusWeaken
	StatusMorph
	StatusNoMove
	StatusNoSkill

	statusKindCount
)

// String returns the status name for logging and data files.
func (k StatusKind) String() string {
	switch k {
	case StatusFreeze:
		return "freeze"
	case StatusPoison:
		return "poison"
	case StatusPetrify:
		return "petrify"
	case StatusWeaken:
		return "weaken"
	case StatusMorph:
		return "morph"
	case StatusNoMove:
		return "nomove"
	case StatusNoSkill:
		return "noskill"
	default:
		return "none"
	}
}

// ParseStatusKind maps a data-file value to a StatusKind.
// Unknown values map to StatusNone.
func ParseStatusKind(s string) StatusKind {
	for k := StatusFreeze; k < statusKindCount; k++ {
		if k.String() == s {
			return k
		}
	}
	return StatusNone
}

// Poison drains one life point per stack level every poisonPeriodMs.
const poisonPeriodMs = 1000

// StatusSet holds the active conditions on one combatant as countdown
// timers in milliseconds. Owned by the combatant, ticked once per
// simulation tick. No locking: the simulation is single-threaded.
type StatusSet struct {
	remaining [statusKindCount]int32

	poisonLevel int32
	poisonAccum int32
}

// Apply starts (or extends) a condition. A fresh application always wins
// if it lasts longer than what remains.
func (s *StatusSet) Apply(kind StatusKind, durationMs int32) {
	if kind == StatusNone || kind >= statusKindCount || durationMs <= 0 {
		return
	}
	if durationMs > s.remaining[kind] {
		s.remaining[kind] = durationMs
	}
	if kind == StatusPoison && s.poisonLevel == 0 {
		s.poisonLevel = 1
	}
}

// ApplyPoison starts poison with an explicit stack level.
func (s *StatusSet) ApplyPoison(durationMs, level int32) {
	s.Apply(StatusPoison, durationMs)
	if level > s.poisonLevel {
		s.poisonLevel = level
	}
}

// Active reports whether the condition is currently running.
func (s *StatusSet) Active(kind StatusKind) bool {
	if kind >= statusKindCount {
		return false
	}
	return s.remaining[kind] > 0
}

// CanMove reports whether movement is allowed under the current conditions.
func (s *StatusSet) CanMove() bool {
	return !s.Active(StatusFreeze) && !s.Active(StatusPetrify) && !s.Active(StatusNoMove)
}

// CanAct reports whether ability use is allowed under the current conditions.
func (s *StatusSet) CanAct() bool {
	return !s.Active(StatusFreeze) && !s.Active(StatusPetrify) && !s.Active(StatusNoSkill)
}

// Tick advances all condition timers by deltaMs and returns the poison
// damage accrued this tick (0 when not poisoned).
func (s *StatusSet) Tick(deltaMs int32) int32 {
	var poisonDamage int32
	if s.Active(StatusPoison) {
		s.poisonAccum += deltaMs
		for s.poisonAccum >= poisonPeriodMs {
			s.poisonAccum -= poisonPeriodMs
			poisonDamage += s.poisonLevel
		}
	}
	for k := range s.remaining {
		if s.remaining[k] > 0 {
			s.remaining[k] -= deltaMs
			if s.remaining[k] < 0 {
				s.remaining[k] = 0
			}
		}
	}
	if !s.Active(StatusPoison) {
		s.poisonLevel = 0
		s.poisonAccum = 0
	}
	return poisonDamage
}

// Clear removes every active condition.
func (s *StatusSet) Clear() {
	for k := range s.remaining {
		s.remaining[k] = 0
	}
	s.poisonLevel = 0
	s.poisonAccum = 0
}
