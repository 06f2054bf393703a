package gravity

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const tolerance = 1e-9

func mustPlanet(t *testing.T, name string, x, y, radius, mass, reach float64) *Planet {
	t.Helper()
	p, err := NewPlanet(name, cp.Vector{X: x, Y: y}, radius, mass, reach)
	if err != nil {
		t.Fatalf("NewPlanet(%s): %v", name, err)
	}
	return p
}

func mustField(t *testing.T, g float64) *Field {
	t.Helper()
	f, err := NewField(Config{G: g})
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func near(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

func TestNewFieldValidation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"explicit", Config{G: 1, MinDistance: 0.5}, false},
		{"negative_g", Config{G: -1}, true},
		{"nan_g", Config{G: math.NaN()}, true},
		{"negative_min_distance", Config{MinDistance: -1}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewField(c.cfg)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestForceAtSinglePlanet(t *testing.T) {
	f := mustField(t, 1)
	p := mustPlanet(t, "home", 0, 0, 5, 1000, 10)
	f.AddPlanet(p)

	t.Run("in_range_points_at_center", func(t *testing.T) {
		got := f.ForceAt(cp.Vector{X: 0, Y: 8})
		want := cp.Vector{X: 0, Y: -1000.0 / 64.0}
		if !near(got, want) {
			t.Fatalf("ForceAt((0,8)) = %v, want %v", got, want)
		}
	})

	t.Run("out_of_range_is_zero", func(t *testing.T) {
		got := f.ForceAt(cp.Vector{X: 0, Y: 20})
		if got != (cp.Vector{}) {
			t.Fatalf("ForceAt((0,20)) = %v, want zero", got)
		}
	})

	t.Run("reach_boundary_is_excluded", func(t *testing.T) {
		got := f.ForceAt(cp.Vector{X: 15, Y: 0})
		if got != (cp.Vector{}) {
			t.Fatalf("ForceAt at exactly radius+range = %v, want zero", got)
		}
	})

	t.Run("magnitude_follows_inverse_square", func(t *testing.T) {
		for _, d := range []float64{1, 3, 6, 9.5, 14.9} {
			pt := cp.Vector{X: d / math.Sqrt2, Y: -d / math.Sqrt2}
			got := f.ForceAt(pt)
			wantMag := 1000.0 / (d * d)
			if math.Abs(got.Length()-wantMag) > 1e-6 {
				t.Fatalf("d=%v magnitude %v, want %v", d, got.Length(), wantMag)
			}
			// collinear with center->point and pointing back at the center
			if math.Abs(got.Cross(pt)) > 1e-6 || got.Dot(pt) >= 0 {
				t.Fatalf("d=%v force %v not directed at center from %v", d, got, pt)
			}
		}
	})

	t.Run("center_is_zero", func(t *testing.T) {
		got := f.ForceAt(cp.Vector{})
		if got != (cp.Vector{}) {
			t.Fatalf("ForceAt(center) = %v, want zero", got)
		}
	})

	t.Run("near_center_is_clamped", func(t *testing.T) {
		got := f.ForceAt(cp.Vector{X: 1e-6, Y: 0})
		if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
			t.Fatalf("ForceAt near center not finite: %v", got)
		}
		if math.Abs(got.Length()-1000.0) > 1e-6 {
			t.Fatalf("expected magnitude clamped at G*m/min^2 = 1000, got %v", got.Length())
		}
	})
}

func TestForceAtLinearInMass(t *testing.T) {
	pt := cp.Vector{X: 3, Y: 4}
	light := mustField(t, 1)
	light.AddPlanet(mustPlanet(t, "light", 0, 0, 2, 500, 10))
	heavy := mustField(t, 1)
	heavy.AddPlanet(mustPlanet(t, "heavy", 0, 0, 2, 1000, 10))

	a := light.ForceAt(pt)
	b := heavy.ForceAt(pt)
	if !near(a.Mult(2), b) {
		t.Fatalf("doubling mass: %v -> %v, want %v", a, b, a.Mult(2))
	}
}

func TestForceAtFarFromAllPlanetsIsZero(t *testing.T) {
	f := mustField(t, 1)
	f.AddPlanet(mustPlanet(t, "a", 0, 0, 5, 1000, 10))
	f.AddPlanet(mustPlanet(t, "b", 100, 0, 20, 5000, 30))
	f.AddPlanet(mustPlanet(t, "c", -40, 60, 1, 10, 0))

	for _, pt := range []cp.Vector{{X: 0, Y: 500}, {X: -300, Y: -300}, {X: 1000, Y: 0}} {
		if got := f.ForceAt(pt); got != (cp.Vector{}) {
			t.Fatalf("ForceAt(%v) = %v, want zero", pt, got)
		}
	}
}

func TestForceAtSymmetricPlanetsCancel(t *testing.T) {
	f := mustField(t, 1)
	left := mustPlanet(t, "left", -10, 0, 5, 1000, 10)
	right := mustPlanet(t, "right", 10, 0, 5, 1000, 10)
	f.AddPlanet(left)
	f.AddPlanet(right)

	a := f.contribution(left, cp.Vector{})
	b := f.contribution(right, cp.Vector{})
	if math.Abs(a.Length()-b.Length()) > tolerance || a.Length() == 0 {
		t.Fatalf("contributions differ in magnitude: %v vs %v", a, b)
	}
	if !near(a.Add(b), cp.Vector{}) {
		t.Fatalf("contributions are not opposite: %v vs %v", a, b)
	}
	if got := f.ForceAt(cp.Vector{}); !near(got, cp.Vector{}) {
		t.Fatalf("ForceAt(origin) = %v, want zero", got)
	}
}

func TestAddRemovePlanet(t *testing.T) {
	f := mustField(t, 1)
	a := mustPlanet(t, "a", 0, 0, 5, 1000, 10)
	b := mustPlanet(t, "b", 30, 0, 5, 1000, 10)
	pt := cp.Vector{X: 0, Y: 8}

	f.AddPlanet(a)
	single := f.ForceAt(pt)
	f.AddPlanet(a)
	if got := f.ForceAt(pt); !near(got, single.Mult(2)) {
		t.Fatalf("double add should double count: %v vs %v", got, single.Mult(2))
	}

	tests := []struct {
		name    string
		planet  *Planet
		want    bool
		wantLen int
	}{
		{"remove_first_copy", a, true, 1},
		{"remove_absent", b, false, 1},
		{"remove_second_copy", a, true, 0},
		{"remove_from_empty", a, false, 0},
		{"remove_nil", nil, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.RemovePlanet(tc.planet); got != tc.want {
				t.Fatalf("RemovePlanet = %v, want %v", got, tc.want)
			}
			if f.Len() != tc.wantLen {
				t.Fatalf("Len = %d, want %d", f.Len(), tc.wantLen)
			}
		})
	}
	if f.Has(a) {
		t.Fatalf("expected a removed")
	}
}

func TestResetAndPlanetsCopy(t *testing.T) {
	f := mustField(t, 1)
	a := mustPlanet(t, "a", 0, 0, 5, 1000, 10)
	b := mustPlanet(t, "b", 30, 0, 5, 1000, 10)
	f.AddPlanet(a)
	f.AddPlanet(b)

	got := f.Planets()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Planets() not in insertion order: %v", got)
	}
	got[0] = nil
	if !f.Has(a) {
		t.Fatalf("mutating the copy changed the field")
	}

	f.Reset()
	if f.Len() != 0 || f.Has(a) {
		t.Fatalf("Reset left planets behind")
	}
	if f.ForceAt(cp.Vector{X: 0, Y: 8}) != (cp.Vector{}) {
		t.Fatalf("expected zero force after reset")
	}
}

func TestNearestAndDominant(t *testing.T) {
	f := mustField(t, 1)
	small := mustPlanet(t, "small", 0, 0, 5, 100, 50)
	big := mustPlanet(t, "big", 40, 0, 20, 100000, 50)
	f.AddPlanet(small)
	f.AddPlanet(big)

	pt := cp.Vector{X: 12, Y: 0}
	if p, ok := f.Nearest(pt); !ok || p != small {
		t.Fatalf("Nearest(%v) = %v, want small (surface 7 away vs 8)", pt, p)
	}
	if p, ok := f.Dominant(pt); !ok || p != big {
		t.Fatalf("Dominant(%v) = %v, want big", pt, p)
	}
	if _, ok := f.Dominant(cp.Vector{X: -1000}); ok {
		t.Fatalf("expected no dominant planet far away")
	}

	empty := mustField(t, 1)
	if _, ok := empty.Nearest(pt); ok {
		t.Fatalf("expected no nearest planet in empty field")
	}
}

func TestNearestOfSubset(t *testing.T) {
	a := mustPlanet(t, "a", 0, 0, 5, 100, 10)
	b := mustPlanet(t, "b", 20, 0, 5, 100, 10)
	c := mustPlanet(t, "c", 9, 0, 1, 100, 10)
	pt := cp.Vector{X: 6, Y: 0}

	cases := []struct {
		name    string
		planets []*Planet
		want    *Planet
	}{
		{"closest_of_all", []*Planet{a, b, c}, a},
		{"closest_left_out", []*Planet{b, c}, c},
		{"tie_keeps_order", []*Planet{c, c}, c},
		{"skips_nil", []*Planet{nil, b}, b},
		{"empty", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NearestOf(pt, tc.planets)
			if got != tc.want || ok != (tc.want != nil) {
				t.Fatalf("NearestOf = %v, %v; want %v", got, ok, tc.want)
			}
		})
	}
}

func TestNilFieldIsSafe(t *testing.T) {
	var f *Field
	f.AddPlanet(nil)
	f.Reset()
	if f.RemovePlanet(nil) || f.Has(nil) || f.Len() != 0 {
		t.Fatalf("nil field should be empty")
	}
	if f.ForceAt(cp.Vector{X: 1}) != (cp.Vector{}) {
		t.Fatalf("nil field should exert no force")
	}
}
