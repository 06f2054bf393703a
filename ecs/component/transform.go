package component

// Transform is the world-space pose of an entity. Y grows upward; the
// renderer flips it onto the screen.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
