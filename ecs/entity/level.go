package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/levels"
	"github.com/milk9111/starstruck/prefabs"
)

// BuildLevel creates a fresh field from the gravity tuning and fills the
// world with the level's planets, stars, goal, player and camera.
func BuildLevel(w *ecs.World, lvl *levels.Level, specs *prefabs.BuildSpecs) (*gravity.Field, error) {
	if specs == nil {
		return nil, fmt.Errorf("level: nil build specs")
	}
	field, err := gravity.NewField(specs.Gravity.Config)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	if err := populate(w, field, lvl, specs); err != nil {
		return nil, err
	}
	return field, nil
}

// ResetLevel empties the world and field and rebuilds the level into them.
// It must run between simulation steps.
func ResetLevel(w *ecs.World, field *gravity.Field, lvl *levels.Level, specs *prefabs.BuildSpecs) error {
	if field == nil {
		return fmt.Errorf("level: nil field")
	}
	if specs == nil {
		return fmt.Errorf("level: nil build specs")
	}
	w.Clear()
	field.Reset()
	return populate(w, field, lvl, specs)
}

func populate(w *ecs.World, field *gravity.Field, lvl *levels.Level, specs *prefabs.BuildSpecs) error {
	if w == nil {
		return fmt.Errorf("level: nil world")
	}
	if err := lvl.Validate(); err != nil {
		return err
	}

	planetColor := specs.Gravity.PlanetColor.RGBA8(defaultPlanetColor)
	for _, def := range lvl.Planets {
		if _, err := NewPlanet(w, field, def, planetColor); err != nil {
			return err
		}
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX: 0,
		MinY: 0,
		MaxX: lvl.Width,
		MaxY: lvl.Height,
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	for _, s := range lvl.Stars {
		if _, err := NewStarAt(w, s.X, s.Y); err != nil {
			return err
		}
	}

	goal := ecs.CreateEntity(w)
	if err := ecs.Add(w, goal, component.GoalComponent.Kind(), &component.Goal{
		Script:     lvl.Script,
		Status:     component.GoalPlaying,
		StarsTotal: len(lvl.Stars),
	}); err != nil {
		return fmt.Errorf("level: add goal: %w", err)
	}

	if _, err := NewPlayerAt(w, &specs.Player, lvl.Spawn.X, lvl.Spawn.Y); err != nil {
		return err
	}
	if _, err := NewCameraAt(w, &specs.Camera, lvl.Spawn.X, lvl.Spawn.Y); err != nil {
		return err
	}

	log.Printf("level: loaded %s (%d planets, %d stars)", lvl.Name, field.Len(), len(lvl.Stars))
	return nil
}
