package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration for
// a dynamic body. The body origin sits at the character's feet; the box
// collider is offset above it along local +Y.
type PhysicsBody struct {
	Body        *cp.Body
	Shape       *cp.Shape
	GroundShape *cp.Shape
	Width       float64
	Height      float64
	Mass        float64
	Friction    float64
	// SensorRadius sizes the foot sensor that reports planet contacts.
	SensorRadius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
