package component

import "github.com/jakecoffman/cp"

// Pickup is a collectible star held in place by a sensor circle.
type Pickup struct {
	Kind      string
	Radius    float64
	Shape     *cp.Shape
	Collected bool
	BobPhase  float64
}

var PickupComponent = NewComponent[Pickup]()
