package system

import (
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
)

// PickupCollectSystem removes stars the physics step marked collected and
// credits them to the level goal.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem {
	return &PickupCollectSystem{}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var collected []ecs.Entity
	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, pu *component.Pickup) {
		if pu.Collected {
			collected = append(collected, e)
		}
	})
	if len(collected) == 0 {
		return
	}

	goal := firstGoal(w)
	for _, e := range collected {
		if goal != nil {
			goal.StarsCollected++
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventCollected, Entity: e})
		ecs.DestroyEntity(w, e)
	}
}

func firstGoal(w *ecs.World) *component.Goal {
	e, ok := w.First(component.GoalComponent.Kind().ID())
	if !ok {
		return nil
	}
	goal, _ := ecs.Get(w, e, component.GoalComponent.Kind())
	return goal
}
