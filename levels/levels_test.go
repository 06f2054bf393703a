package levels

import (
	"errors"
	"testing"

	"github.com/milk9111/starstruck/gravity"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected at least two embedded levels, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevelFromFS(name)
			if err != nil {
				t.Fatalf("LoadLevelFromFS(%s): %v", name, err)
			}
			if lvl.Name != name {
				t.Fatalf("level name %q does not match file %q", lvl.Name, name)
			}
			planets, err := lvl.BuildPlanets()
			if err != nil {
				t.Fatalf("Planets: %v", err)
			}
			if len(planets) != len(lvl.Planets) {
				t.Fatalf("got %d planets, want %d", len(planets), len(lvl.Planets))
			}
			// the spawn must feel some pull or the player floats forever
			f, err := gravity.NewField(gravity.Config{})
			if err != nil {
				t.Fatal(err)
			}
			for _, p := range planets {
				f.AddPlanet(p)
			}
			if f.ForceAt(lvl.Spawn.Vector()).LengthSq() == 0 {
				t.Fatalf("spawn (%v, %v) is outside every planet's reach", lvl.Spawn.X, lvl.Spawn.Y)
			}
		})
	}
}

func TestLoadLevelSuffixOptional(t *testing.T) {
	a, err := LoadLevelFromFS("planets")
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadLevelFromFS("planets.json")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != b.Name || len(a.Planets) != len(b.Planets) {
		t.Fatalf("suffix changed the result: %+v vs %+v", a, b)
	}
	if _, err := LoadLevelFromFS("nowhere"); err == nil {
		t.Fatalf("expected error for a missing level")
	}
}

func TestParseRejectsInvalidLevels(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"zero_size", `{"name":"x","width":0,"height":10,"spawn":{"x":0,"y":0},"planets":[{"name":"a","x":1,"y":1,"radius":1,"mass":1,"range":1}]}`},
		{"spawn_outside", `{"name":"x","width":10,"height":10,"spawn":{"x":20,"y":0},"planets":[{"name":"a","x":1,"y":1,"radius":1,"mass":1,"range":1}]}`},
		{"no_planets", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[]}`},
		{"unnamed_planet", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[{"x":1,"y":1,"radius":1,"mass":1,"range":1}]}`},
		{"duplicate_planet", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[{"name":"a","x":1,"y":1,"radius":1,"mass":1,"range":1},{"name":"a","x":5,"y":5,"radius":1,"mass":1,"range":1}]}`},
		{"zero_radius", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[{"name":"a","x":1,"y":1,"radius":0,"mass":1,"range":1}]}`},
		{"negative_mass", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[{"name":"a","x":1,"y":1,"radius":1,"mass":-1,"range":1}]}`},
		{"negative_range", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[{"name":"a","x":1,"y":1,"radius":1,"mass":1,"range":-1}]}`},
		{"star_outside", `{"name":"x","width":10,"height":10,"spawn":{"x":1,"y":1},"planets":[{"name":"a","x":1,"y":1,"radius":1,"mass":1,"range":1}],"stars":[{"x":-1,"y":0}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.json))
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}

	t.Run("planet_errors_keep_their_sentinel", func(t *testing.T) {
		_, err := Parse([]byte(cases[5].json))
		if !errors.Is(err, gravity.ErrInvalidPlanet) {
			t.Fatalf("expected gravity.ErrInvalidPlanet in chain, got %v", err)
		}
	})

	t.Run("bad_json", func(t *testing.T) {
		if _, err := Parse([]byte(`{"name":`)); err == nil {
			t.Fatalf("expected unmarshal error")
		}
	})
}
