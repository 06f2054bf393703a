package locomotion

import "github.com/jakecoffman/cp"

// Positioned exposes a body's world-space position.
type Positioned interface {
	Position() cp.Vector
}

// Movable lets the controller correct a body's pose and velocity.
type Movable interface {
	SetPosition(pos cp.Vector)
	Velocity() cp.Vector
	SetVelocityVector(v cp.Vector)
	Angle() float64
	SetAngle(angle float64)
}

// ForceReceiver is the physics engine's force/impulse entry point.
type ForceReceiver interface {
	ApplyForceAtWorldPoint(force, point cp.Vector)
	ApplyImpulseAtWorldPoint(impulse, point cp.Vector)
}

// Body is everything a Character needs from the rigid body it drives.
// *cp.Body satisfies it.
type Body interface {
	Positioned
	Movable
	ForceReceiver
}

var _ Body = (*cp.Body)(nil)
