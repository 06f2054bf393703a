package component

import "github.com/milk9111/starstruck/locomotion"

// Locomotion carries a character's surface controller and the planet
// contacts the physics step reported for it.
type Locomotion struct {
	// Config is applied when the character is created and on tuning reloads.
	Config    locomotion.Config
	Character *locomotion.Character
	// Pending holds contacts reported since the last locomotion update, in
	// arrival order.
	Pending []locomotion.ContactEvent
	Last    locomotion.Result
}

var LocomotionComponent = NewComponent[Locomotion]()
