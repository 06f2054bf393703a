package entity

import (
	"fmt"

	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
)

const starRadius = 8.0

func NewStarAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("star: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:     "star",
		Radius:   starRadius,
		BobPhase: x * 0.01,
	}); err != nil {
		return 0, fmt.Errorf("star: add pickup: %w", err)
	}
	return e, nil
}
