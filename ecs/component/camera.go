package component

type Camera struct {
	TargetName string
	Zoom       float64
	// FollowSeconds is the tween duration used to catch up with the target.
	FollowSeconds float64
	Easing        string
	// AlignToUp rotates the view so the target's local up points up on screen.
	AlignToUp bool
}

var CameraComponent = NewComponent[Camera]()
