package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/gravity"
	"golang.org/x/image/colornames"
)

var errBadGrid = errors.New("fieldmap: bad grid")

// Grid holds force magnitudes sampled at cell centers. Row 0 is the top of
// the level (largest y).
type Grid struct {
	Cols, Rows int
	Cell       float64
	// G is the field's gravitational constant, printed in the legend.
	G         float64
	Magnitude []float64
	Max       float64
}

func (g *Grid) At(col, row int) float64 {
	return g.Magnitude[row*g.Cols+col]
}

func Sample(field *gravity.Field, width, height, cell float64) (*Grid, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: nil field", errBadGrid)
	}
	if cell <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: cell %v over %vx%v", errBadGrid, cell, width, height)
	}
	g := &Grid{
		Cols: int(math.Ceil(width / cell)),
		Rows: int(math.Ceil(height / cell)),
		Cell: cell,
		G:    field.G(),
	}
	g.Magnitude = make([]float64, g.Cols*g.Rows)
	for row := 0; row < g.Rows; row++ {
		y := height - (float64(row)+0.5)*cell
		for col := 0; col < g.Cols; col++ {
			x := (float64(col) + 0.5) * cell
			m := field.ForceAt(cp.Vector{X: x, Y: y}).Length()
			g.Magnitude[row*g.Cols+col] = m
			g.Max = math.Max(g.Max, m)
		}
	}
	return g, nil
}

// WritePNG draws one pixel per cell on a log scale from the background
// color to white. Cells outside every planet's reach stay black.
func WritePNG(w io.Writer, g *Grid) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	lo := colornames.Midnightblue
	hi := colornames.Gold
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			m := g.At(col, row)
			if m == 0 {
				img.SetRGBA(col, row, colornames.Black)
				continue
			}
			img.SetRGBA(col, row, lerpColor(lo, hi, intensity(m, g.Max)))
		}
	}
	return png.Encode(w, img)
}

// WriteText prints a legend line followed by one digit 0-9 per cell, or '.'
// outside every reach.
func WriteText(w io.Writer, g *Grid) error {
	if _, err := fmt.Fprintf(w, "# G=%g cell=%g max=%.3f\n", g.G, g.Cell, g.Max); err != nil {
		return err
	}
	line := make([]byte, g.Cols+1)
	line[g.Cols] = '\n'
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			m := g.At(col, row)
			if m == 0 {
				line[col] = '.'
				continue
			}
			line[col] = '0' + byte(math.Min(9, math.Floor(intensity(m, g.Max)*10)))
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func intensity(m, max float64) float64 {
	if max <= 0 || m <= 0 {
		return 0
	}
	return math.Log1p(m) / math.Log1p(max)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
