package entity

import (
	"fmt"

	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/prefabs"
)

func NewCameraAt(w *ecs.World, spec *prefabs.CameraSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	follow := spec.FollowSeconds
	if follow <= 0 {
		follow = 0.35
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName:    spec.Target,
		Zoom:          zoom,
		FollowSeconds: follow,
		Easing:        spec.Easing,
		AlignToUp:     spec.AlignToUp,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
