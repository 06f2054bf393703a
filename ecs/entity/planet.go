package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/levels"
)

var defaultPlanetColor = color.RGBA{R: 0x4f, G: 0x7c, B: 0xac, A: 0xff}

// NewPlanet registers the planet with field and gives it an entity; the
// physics system adds its collision circle on the next step.
func NewPlanet(w *ecs.World, field *gravity.Field, def levels.PlanetDef, tint color.RGBA) (ecs.Entity, error) {
	p, err := def.Planet()
	if err != nil {
		return 0, fmt.Errorf("planet: %w", err)
	}

	e := ecs.CreateEntity(w)
	pos := p.Position()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("planet: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PlanetComponent.Kind(), &component.Planet{Planet: p, Color: tint}); err != nil {
		return 0, fmt.Errorf("planet: add planet: %w", err)
	}
	field.AddPlanet(p)
	return e, nil
}

// RemovePlanet takes a planet out of both the field and the world. Characters
// standing on it detach on their next update.
func RemovePlanet(w *ecs.World, field *gravity.Field, e ecs.Entity) bool {
	pc, ok := ecs.Get(w, e, component.PlanetComponent.Kind())
	if !ok {
		return false
	}
	field.RemovePlanet(pc.Planet)
	return ecs.DestroyEntity(w, e)
}
