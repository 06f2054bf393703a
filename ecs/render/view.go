package render

import (
	"math"

	"github.com/jakecoffman/cp"
)

// View maps world coordinates (Y up) onto the screen (Y down). The camera
// point lands in the middle of the screen; Rotation turns the world so that
// a body at that angle appears upright.
type View struct {
	CenterX  float64
	CenterY  float64
	Zoom     float64
	Rotation float64
	ScreenW  float64
	ScreenH  float64
}

func (v View) ToScreen(p cp.Vector) (float32, float32) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	d := p.Sub(cp.Vector{X: v.CenterX, Y: v.CenterY})
	if v.Rotation != 0 {
		d = d.Rotate(cp.ForAngle(-v.Rotation))
	}
	return float32(v.ScreenW/2 + d.X*zoom), float32(v.ScreenH/2 - d.Y*zoom)
}

// Scale converts a world length into pixels.
func (v View) Scale(length float64) float32 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float32(length * zoom)
}

// Visible reports whether a circle could touch the screen.
func (v View) Visible(p cp.Vector, radius float64) bool {
	x, y := v.ToScreen(p)
	r := float64(v.Scale(radius))
	diag := math.Hypot(v.ScreenW, v.ScreenH)
	return math.Hypot(float64(x)-v.ScreenW/2, float64(y)-v.ScreenH/2) < diag/2+r
}
