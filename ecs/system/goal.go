package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/prefabs"
)

// GoalSystem decides whether the level is won or lost by running the level's
// tengo script over the star and bounds counters. Once decided, the status
// sticks until the level is rebuilt.
type GoalSystem struct {
	scripts map[string]*tengo.Compiled
	load    func(name string) ([]byte, error)
}

func NewGoalSystem() *GoalSystem {
	return &GoalSystem{
		scripts: make(map[string]*tengo.Compiled),
		load:    prefabs.LoadScript,
	}
}

// Invalidate drops compiled scripts so edited sources are picked up on the
// next update.
func (gs *GoalSystem) Invalidate() {
	if gs == nil {
		return
	}
	clear(gs.scripts)
}

func (gs *GoalSystem) Update(w *ecs.World) {
	if gs == nil || w == nil {
		return
	}

	outOfBounds := playerOutOfBounds(w)

	ecs.ForEach(w, component.GoalComponent.Kind(), func(e ecs.Entity, goal *component.Goal) {
		if goal.Status == "" {
			goal.Status = component.GoalPlaying
		}
		if goal.Status != component.GoalPlaying {
			return
		}
		goal.Frames++
		goal.OutOfBounds = outOfBounds

		status, err := gs.evaluate(goal)
		if err != nil {
			log.Printf("GoalSystem: %v", err)
			return
		}
		if status == goal.Status {
			return
		}
		goal.Status = status
		log.Printf("GoalSystem: level %s after %d frames", status, goal.Frames)
		w.Events().Push(ecs.Event{Kind: ecs.EventGoal, Entity: e, Data: status})
	})
}

func (gs *GoalSystem) evaluate(goal *component.Goal) (component.GoalStatus, error) {
	compiled, err := gs.compiled(goal.Script)
	if err != nil {
		return goal.Status, err
	}

	vars := map[string]any{
		"stars_collected": goal.StarsCollected,
		"stars_total":     goal.StarsTotal,
		"out_of_bounds":   goal.OutOfBounds,
		"frames":          goal.Frames,
	}
	for name, v := range vars {
		if err := compiled.Set(name, v); err != nil {
			return goal.Status, fmt.Errorf("script %s: set %s: %w", goal.Script, name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return goal.Status, fmt.Errorf("script %s: %w", goal.Script, err)
	}
	if !compiled.IsDefined("status") {
		return goal.Status, fmt.Errorf("script %s: status is not defined", goal.Script)
	}

	switch s := component.GoalStatus(strings.TrimSpace(compiled.Get("status").String())); s {
	case component.GoalPlaying, component.GoalWon, component.GoalLost:
		return s, nil
	default:
		return goal.Status, fmt.Errorf("script %s: unknown status %q", goal.Script, s)
	}
}

func (gs *GoalSystem) compiled(name string) (*tengo.Compiled, error) {
	if name == "" {
		name = "sandbox"
	}
	if c, ok := gs.scripts[name]; ok {
		return c, nil
	}

	src, err := gs.load(name)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("stars_collected", 0)
	_ = script.Add("stars_total", 0)
	_ = script.Add("out_of_bounds", false)
	_ = script.Add("frames", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", name, err)
	}
	gs.scripts[name] = c
	return c, nil
}

func playerOutOfBounds(w *ecs.World) bool {
	boundsEnt, ok := w.First(component.LevelBoundsComponent.Kind().ID())
	if !ok {
		return false
	}
	bounds, ok := ecs.Get(w, boundsEnt, component.LevelBoundsComponent.Kind())
	if !ok {
		return false
	}
	out := false
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		if !bounds.Contains(t.X, t.Y) {
			out = true
		}
	})
	return out
}
