package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/gravity"
)

// Planet ties a gravity source to its static collision circle.
type Planet struct {
	Planet *gravity.Planet
	Shape  *cp.Shape
	Color  color.RGBA
}

var PlanetComponent = NewComponent[Planet]()
