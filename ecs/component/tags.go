package component

// PlayerTag marks the character driven by keyboard and gamepad input. Goal
// scripts and the camera look it up with World.First.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
