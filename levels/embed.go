package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/gravity"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a read-only arena description. Coordinates are world units with
// Y growing upward; the playable area spans (0,0) to (Width,Height).
type Level struct {
	Name    string      `json:"name"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Spawn   Point       `json:"spawn"`
	Planets []PlanetDef `json:"planets"`
	Stars   []Point     `json:"stars,omitempty"`
	// Script names the goal script under prefabs/scripts.
	Script string `json:"script,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

type PlanetDef struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
	Range  float64 `json:"range"`
}

func (d PlanetDef) Planet() (*gravity.Planet, error) {
	return gravity.NewPlanet(d.Name, cp.Vector{X: d.X, Y: d.Y}, d.Radius, d.Mass, d.Range)
}

// LoadLevelFromFS reads and validates an embedded level. The .json suffix
// is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels without their suffix, sorted.
func Names() []string {
	matches, _ := fs.Glob(LevelsFS, "*.json")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".json"))
	}
	sort.Strings(names)
	return names
}

func (l *Level) Contains(p Point) bool {
	return p.X >= 0 && p.X <= l.Width && p.Y >= 0 && p.Y <= l.Height
}

// Validate checks the arena and every planet. Planet checks are the ones
// gravity.NewPlanet applies.
func (l *Level) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil level", ErrInvalidLevel)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %s: size %vx%v must be positive", ErrInvalidLevel, l.Name, l.Width, l.Height)
	}
	if !l.Contains(l.Spawn) {
		return fmt.Errorf("%w: %s: spawn (%v, %v) outside the level", ErrInvalidLevel, l.Name, l.Spawn.X, l.Spawn.Y)
	}
	if len(l.Planets) == 0 {
		return fmt.Errorf("%w: %s: no planets", ErrInvalidLevel, l.Name)
	}
	seen := make(map[string]bool, len(l.Planets))
	for i, d := range l.Planets {
		if d.Name == "" {
			return fmt.Errorf("%w: %s: planet %d has no name", ErrInvalidLevel, l.Name, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: %s: duplicate planet %q", ErrInvalidLevel, l.Name, d.Name)
		}
		seen[d.Name] = true
		if _, err := d.Planet(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidLevel, l.Name, err)
		}
	}
	for i, s := range l.Stars {
		if !l.Contains(s) {
			return fmt.Errorf("%w: %s: star %d at (%v, %v) outside the level", ErrInvalidLevel, l.Name, i, s.X, s.Y)
		}
	}
	return nil
}

// BuildPlanets builds the level's planets in file order.
func (l *Level) BuildPlanets() ([]*gravity.Planet, error) {
	out := make([]*gravity.Planet, 0, len(l.Planets))
	for _, d := range l.Planets {
		p, err := d.Planet()
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}
