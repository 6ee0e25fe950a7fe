package data

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/veleth/moonblade/internal/model"
)

// Ability files are key/value text split into sections: an [Init] section
// with the base values plus optional [LevelN] sections that override a
// subset of fields for level N. Unknown keys are ignored, not errors.

// ParseDefinition parses ability file content. The path is recorded on the
// definition and used as its cache identity.
func ParseDefinition(path string, content []byte) (*Definition, error) {
	def := &Definition{
		Path:        path,
		FloorDamage: 1,
		levels:      make(map[int32][]kvPair),
	}

	section := ""
	var level int32

	for lineNo, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			level = 0
			if rest, ok := strings.CutPrefix(section, "Level"); ok {
				n, err := parseInt32(rest)
				if err != nil || n < 1 {
					return nil, fmt.Errorf("%s:%d: bad level section %q", path, lineNo+1, section)
				}
				level = n
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			slog.Debug("skipping malformed line", "path", path, "line", lineNo+1)
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case section == "Init" || section == "":
			if !applyKey(def, key, value) {
				slog.Debug("ignoring unknown ability key", "path", path, "key", key)
			}
		case level > 0:
			def.levels[level] = append(def.levels[level], kvPair{key: key, value: value})
		default:
			slog.Debug("ignoring key outside known section", "path", path, "section", section, "key", key)
		}
	}

	if def.Name == "" {
		def.Name = path
	}
	return def, nil
}

// applyKey sets one field from a key/value pair. Returns false for unknown
// keys so the caller can log the gap. Shared by the Init parse and the
// AtLevel merge, which keeps the two paths identical by construction.
func applyKey(d *Definition, key, value string) bool {
	switch key {
	case "Name":
		d.Name = value
	case "MoveKind":
		kind, ok := ParseMoveKind(value)
		if !ok {
			slog.Warn("unknown move kind, using Fly", "path", d.Path, "value", value)
		}
		d.Kind = kind
	case "ActionFile":
		d.ActionFile = value
	case "VanishFile":
		d.VanishFile = value
	case "FlyingSound":
		d.FlyingSound = value
	case "VanishSound":
		d.VanishSound = value
	case "Speed":
		d.Speed = parseFloat(value)
	case "LifeMs":
		d.LifeMs = parseInt(value)
	case "WaitMs":
		d.WaitMs = parseInt(value)
	case "Cooldown":
		d.Cooldown = parseInt(value)
	case "ManaCost":
		d.ManaCost = parseInt(value)
	case "StaminaCost":
		d.StaminaCost = parseInt(value)
	case "LifeCost":
		d.LifeCost = parseInt(value)
	case "Damage":
		d.Damage = parseInt(value)
	case "Damage2":
		d.Damage2 = parseInt(value)
	case "Damage3":
		d.Damage3 = parseInt(value)
	case "DamageExt":
		d.DamageExt = parseInt(value)
	case "ManaDamage":
		d.ManaDamage = parseInt(value)
	case "Heal":
		d.Heal = parseInt(value)
	case "HealMana":
		d.HealMana = parseInt(value)
	case "FloorDamage":
		d.FloorDamage = parseInt(value)
	case "RegionWidth":
		d.Region.Width = parseInt(value)
	case "RegionHeight":
		d.Region.Height = parseInt(value)
	case "RegionRadius":
		d.Region.Radius = parseInt(value)
	case "StatusKind":
		d.Status.Kind = model.ParseStatusKind(value)
	case "StatusDurationMs":
		d.Status.DurationMs = parseInt(value)
	case "StatusProbability":
		d.Status.Probability = parseInt(value)
	case "PoisonLevel":
		d.Status.PoisonLevel = parseInt(value)
	case "PassThrough":
		d.PassThrough = parseBool(value)
	case "PierceWall":
		d.PierceWall = parseBool(value)
	case "AttackAll":
		d.AttackAll = parseBool(value)
	case "Discard":
		d.Discard = parseBool(value)
	case "Exchange":
		d.Exchange = parseBool(value)
	case "Trace":
		d.Trace = parseBool(value)
	case "BounceCount":
		d.BounceCount = parseInt(value)
	case "TraceDelayMs":
		d.TraceDelayMs = parseInt(value)
	case "TrailGapMs":
		d.TrailGapMs = parseInt(value)
	case "ScreenShake":
		d.ScreenShake = parseInt(value)
	case "SummonFile":
		d.SummonFile = value
	case "ExplodeFile":
		d.ExplodeFile = value
	case "SelfDamagePercent":
		d.SelfDamagePercent = parseInt(value)
	case "SelfDamageProb":
		d.SelfDamageProb = parseInt(value)
	case "LifeStealPercent":
		d.LifeStealPercent = parseInt(value)
	case "ManaRestorePercent":
		d.ManaRestorePct = parseInt(value)
	case "OnKillAbility":
		d.OnKillAbility = value
	case "OnHurtAbility":
		d.OnHurtAbility = value
	case "ControlDurationMs":
		d.ControlDurationMs = parseInt(value)
	default:
		return false
	}
	return true
}

func parseInt(s string) int32 {
	n, _ := parseInt32(s)
	return n
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
