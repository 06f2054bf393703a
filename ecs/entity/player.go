package entity

import (
	"fmt"

	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/prefabs"
)

// NewPlayerAt creates the player with its feet at (x, y). The body and the
// character controller are attached lazily by the physics and locomotion
// systems.
func NewPlayerAt(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	cfg, err := spec.LocomotionConfig()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        spec.Collider.Width,
		Height:       spec.Collider.Height,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		SensorRadius: spec.SensorRadius,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{Config: cfg}); err != nil {
		return 0, fmt.Errorf("player: add locomotion: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	return e, nil
}
