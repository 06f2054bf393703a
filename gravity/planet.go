package gravity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/common"
)

var ErrInvalidPlanet = errors.New("gravity: invalid planet")

// Planet is a point-mass gravity source with a solid surface. Planets are
// immutable once created.
type Planet struct {
	name     string
	position cp.Vector
	radius   float64
	mass     float64
	reach    float64
}

// NewPlanet validates the parameters and returns a planet. radius and mass
// must be positive and effectiveRange must not be negative.
func NewPlanet(name string, position cp.Vector, radius, mass, effectiveRange float64) (*Planet, error) {
	if !common.IsFinite(position.X) || !common.IsFinite(position.Y) {
		return nil, fmt.Errorf("%w: %q position %v is not finite", ErrInvalidPlanet, name, position)
	}
	if !common.IsFinite(radius) || radius <= 0 {
		return nil, fmt.Errorf("%w: %q radius %v must be > 0", ErrInvalidPlanet, name, radius)
	}
	if !common.IsFinite(mass) || mass <= 0 {
		return nil, fmt.Errorf("%w: %q mass %v must be > 0", ErrInvalidPlanet, name, mass)
	}
	if !common.IsFinite(effectiveRange) || effectiveRange < 0 {
		return nil, fmt.Errorf("%w: %q effective range %v must be >= 0", ErrInvalidPlanet, name, effectiveRange)
	}
	return &Planet{
		name:     name,
		position: position,
		radius:   radius,
		mass:     mass,
		reach:    effectiveRange,
	}, nil
}

func (p *Planet) Name() string { return p.name }
func (p *Planet) Position() cp.Vector { return p.position }
func (p *Planet) Radius() float64 { return p.radius }
func (p *Planet) Mass() float64 { return p.mass }
func (p *Planet) EffectiveRange() float64 { return p.reach }

// Reach is the distance from the center beyond which the planet exerts no pull.
func (p *Planet) Reach() float64 {
	return p.radius + p.reach
}

// InRange reports whether point is strictly inside the planet's reach.
func (p *Planet) InRange(point cp.Vector) bool {
	return point.DistanceSq(p.position) < p.Reach()*p.Reach()
}

// LocalUp returns the outward radial direction at point. A point at the
// exact center has no radial direction, so fallback is returned instead.
func (p *Planet) LocalUp(point, fallback cp.Vector) cp.Vector {
	d := point.Sub(p.position)
	if d.LengthSq() == 0 {
		return fallback
	}
	return d.Normalize()
}

// SurfacePoint projects point radially onto the planet's surface.
func (p *Planet) SurfacePoint(point, fallbackUp cp.Vector) cp.Vector {
	return p.position.Add(p.LocalUp(point, fallbackUp).Mult(p.radius))
}

// SurfaceDistance is the signed distance from point to the surface
// (negative inside the planet).
func (p *Planet) SurfaceDistance(point cp.Vector) float64 {
	return point.Distance(p.position) - p.radius
}

func (p *Planet) String() string {
	return fmt.Sprintf("planet %q at (%.1f, %.1f) r=%.1f m=%.1f range=%.1f",
		p.name, p.position.X, p.position.Y, p.radius, p.mass, p.reach)
}
