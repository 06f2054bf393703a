package prefabs

import "errors"

// BuildSpecs bundles every tuning file a level build needs.
type BuildSpecs struct {
	Player  PlayerSpec
	Gravity GravitySpec
	Camera  CameraSpec
}

// LoadBuildSpecs reads all tuning files. Every failure is reported, not
// just the first.
func LoadBuildSpecs() (*BuildSpecs, error) {
	var specs BuildSpecs
	var errs []error

	if p, err := LoadPlayerSpec(); err != nil {
		errs = append(errs, err)
	} else {
		specs.Player = *p
	}
	if g, err := LoadGravitySpec(); err != nil {
		errs = append(errs, err)
	} else {
		specs.Gravity = *g
	}
	if c, err := LoadCameraSpec(); err != nil {
		errs = append(errs, err)
	} else {
		specs.Camera = *c
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if _, err := specs.Player.LocomotionConfig(); err != nil {
		return nil, err
	}
	return &specs, nil
}
