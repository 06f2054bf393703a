package gravity

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/common"
)

var ErrInvalidConfig = errors.New("gravity: invalid field config")

// Config tunes a Field. Zero values take the defaults from common.
type Config struct {
	// G is the gravitational constant applied to every planet.
	G float64 `yaml:"g"`
	// MinDistance is the smallest center distance used for force magnitude.
	MinDistance float64 `yaml:"min_distance"`
}

func (c Config) withDefaults() Config {
	if c.G == 0 {
		c.G = common.GravitationalConstant
	}
	if c.MinDistance == 0 {
		c.MinDistance = common.MinGravityDistance
	}
	return c
}

// Field owns the planets of a level and computes the net pull at any point.
//
// Planets are mutated only while loading or resetting a level, never while a
// simulation step is running, so the field carries no lock.
type Field struct {
	planets     []*Planet
	g           float64
	minDistance float64
}

// NewField creates an empty field.
func NewField(cfg Config) (*Field, error) {
	cfg = cfg.withDefaults()
	if !common.IsFinite(cfg.G) || cfg.G <= 0 {
		return nil, fmt.Errorf("%w: G %v must be > 0", ErrInvalidConfig, cfg.G)
	}
	if !common.IsFinite(cfg.MinDistance) || cfg.MinDistance <= 0 {
		return nil, fmt.Errorf("%w: min distance %v must be > 0", ErrInvalidConfig, cfg.MinDistance)
	}
	return &Field{g: cfg.G, minDistance: cfg.MinDistance}, nil
}

// G returns the gravitational constant.
func (f *Field) G() float64 {
	if f == nil {
		return 0
	}
	return f.g
}

// AddPlanet appends p. Adding the same planet twice counts it twice.
func (f *Field) AddPlanet(p *Planet) {
	if f == nil || p == nil {
		return
	}
	f.planets = append(f.planets, p)
}

// RemovePlanet removes the first occurrence of p and reports whether it was present.
func (f *Field) RemovePlanet(p *Planet) bool {
	if f == nil || p == nil {
		return false
	}
	for i, existing := range f.planets {
		if existing != p {
			continue
		}
		copy(f.planets[i:], f.planets[i+1:])
		f.planets[len(f.planets)-1] = nil
		f.planets = f.planets[:len(f.planets)-1]
		return true
	}
	return false
}

// Has reports whether p is currently part of the field.
func (f *Field) Has(p *Planet) bool {
	if f == nil || p == nil {
		return false
	}
	for _, existing := range f.planets {
		if existing == p {
			return true
		}
	}
	return false
}

// Planets returns a copy of the planets in insertion order.
func (f *Field) Planets() []*Planet {
	if f == nil {
		return nil
	}
	return append([]*Planet(nil), f.planets...)
}

func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.planets)
}

// Reset drops every planet. Used when a level is reloaded.
func (f *Field) Reset() {
	if f == nil {
		return
	}
	clear(f.planets)
	f.planets = f.planets[:0]
}

// ForceAt returns the net pull at point: the sum, over every planet whose
// reach strictly contains point, of G*mass/d^2 directed toward the planet
// center. The cutoff at the reach is hard.
//
// A point exactly at a planet center gets nothing from that planet since the
// direction is undefined; closer than MinDistance the magnitude is clamped.
func (f *Field) ForceAt(point cp.Vector) cp.Vector {
	var total cp.Vector
	if f == nil {
		return total
	}
	for _, p := range f.planets {
		total = total.Add(f.contribution(p, point))
	}
	return total
}

func (f *Field) contribution(p *Planet, point cp.Vector) cp.Vector {
	toCenter := p.position.Sub(point)
	distSq := toCenter.LengthSq()
	if distSq == 0 || !p.InRange(point) {
		return cp.Vector{}
	}
	dist := math.Sqrt(distSq)
	clamped := math.Max(dist, f.minDistance)
	magnitude := f.g * p.mass / (clamped * clamped)
	return toCenter.Mult(magnitude / dist)
}

// Nearest returns the planet whose surface is closest to point.
func (f *Field) Nearest(point cp.Vector) (*Planet, bool) {
	if f == nil {
		return nil, false
	}
	return NearestOf(point, f.planets)
}

// NearestOf returns the planet among planets whose surface is closest to
// point. Ties go to the earliest planet in the slice; nil entries are skipped.
func NearestOf(point cp.Vector, planets []*Planet) (*Planet, bool) {
	var best *Planet
	bestDist := math.Inf(1)
	for _, p := range planets {
		if p == nil {
			continue
		}
		if d := math.Abs(p.SurfaceDistance(point)); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, best != nil
}

// Dominant returns the in-range planet contributing the strongest pull at point.
func (f *Field) Dominant(point cp.Vector) (*Planet, bool) {
	if f == nil {
		return nil, false
	}
	var best *Planet
	bestMag := 0.0
	for _, p := range f.planets {
		mag := f.contribution(p, point).LengthSq()
		if mag > bestMag {
			best, bestMag = p, mag
		}
	}
	return best, best != nil
}
