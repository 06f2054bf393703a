package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/prefabs"
)

// TuningReloadSystem applies edited prefab files. It drains the change feed
// at the start of a step, so nothing changes while a step is in flight.
type TuningReloadSystem struct {
	changes    <-chan string
	locomotion *LocomotionSystem
	goal       *GoalSystem

	// OnGravityChange runs after gravity.yaml changes. Field constants are
	// fixed per field, so the game rebuilds the level here.
	OnGravityChange func()
}

func NewTuningReloadSystem(changes <-chan string, loco *LocomotionSystem, goal *GoalSystem) *TuningReloadSystem {
	return &TuningReloadSystem{changes: changes, locomotion: loco, goal: goal}
}

func (s *TuningReloadSystem) Update(w *ecs.World) {
	if s == nil || s.changes == nil || w == nil {
		return
	}

	var playerChanged, gravityChanged, scriptsChanged bool
drain:
	for {
		select {
		case name, ok := <-s.changes:
			if !ok {
				s.changes = nil
				break drain
			}
			switch base := filepath.Base(name); {
			case base == prefabs.PlayerSpecFile:
				playerChanged = true
			case base == prefabs.GravitySpecFile:
				gravityChanged = true
			case strings.EqualFold(filepath.Ext(base), ".tengo"):
				scriptsChanged = true
			}
		default:
			break drain
		}
	}

	if playerChanged {
		s.reloadPlayer(w)
	}
	if scriptsChanged && s.goal != nil {
		s.goal.Invalidate()
		log.Printf("TuningReloadSystem: goal scripts reloaded")
	}
	if gravityChanged && s.OnGravityChange != nil {
		log.Printf("TuningReloadSystem: %s changed, rebuilding level", prefabs.GravitySpecFile)
		s.OnGravityChange()
	}
}

func (s *TuningReloadSystem) reloadPlayer(w *ecs.World) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("TuningReloadSystem: %v", err)
		return
	}
	cfg, err := spec.LocomotionConfig()
	if err != nil {
		log.Printf("TuningReloadSystem: %v", err)
		return
	}
	if err := s.locomotion.ApplyConfig(w, cfg); err != nil {
		return
	}
	log.Printf("TuningReloadSystem: player tuning reloaded (jump %.1f, walk %.2f, tie break %s)", cfg.JumpStrength, cfg.WalkStep, cfg.TieBreak)
}
