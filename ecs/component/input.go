package component

// Input is the intent sampled once per frame for a controllable character.
// MoveX walks along the surface relative to the character's local up;
// JumpPressed is true only on the frame the jump button went down.
type Input struct {
	MoveX       float64
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
