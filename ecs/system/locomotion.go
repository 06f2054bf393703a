package system

import (
	"log"

	"github.com/milk9111/starstruck/common"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/locomotion"
)

// LocomotionSystem runs every character controller once per step, before the
// physics step, feeding it the contacts the previous step reported.
type LocomotionSystem struct {
	field *gravity.Field
	dt    float64
}

func NewLocomotionSystem(field *gravity.Field, dt float64) *LocomotionSystem {
	if dt <= 0 {
		dt = common.FixedDT
	}
	return &LocomotionSystem{field: field, dt: dt}
}

func (ls *LocomotionSystem) Field() *gravity.Field {
	if ls == nil {
		return nil
	}
	return ls.field
}

// SetField swaps the field after a level rebuild. Existing characters drop
// their support and fall until they touch a planet of the new field.
func (ls *LocomotionSystem) SetField(w *ecs.World, field *gravity.Field) {
	if ls == nil {
		return
	}
	ls.field = field
	if w == nil {
		return
	}
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		loco.Character.SetField(field)
		loco.Pending = loco.Pending[:0]
	})
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if ls == nil || w == nil || ls.field == nil {
		return
	}

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		if loco.Character == nil {
			ch, err := locomotion.NewCharacter(pb.Body, ls.field, loco.Config)
			if err != nil {
				log.Printf("LocomotionSystem: entity %s: %v", e, err)
				return
			}
			loco.Character = ch
		}

		var in locomotion.Input
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			in.MoveX = input.MoveX
			in.Jump = input.JumpPressed
		}

		events := loco.Pending
		loco.Pending = nil
		res := loco.Character.Update(ls.dt, events, in)
		loco.Last = res

		switch res.Transition {
		case locomotion.TransitionLanded:
			w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e, Data: res.Planet})
		case locomotion.TransitionLaunched:
			w.Events().Push(ecs.Event{Kind: ecs.EventJumped, Entity: e, Data: res.Impulse})
		case locomotion.TransitionDetached:
			w.Events().Push(ecs.Event{Kind: ecs.EventDetached, Entity: e})
		case locomotion.TransitionSwitched:
			w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e, Data: res.Planet})
		}
	})
}

// ApplyConfig pushes new tuning to every character. Invalid tuning is logged
// and the previous values are kept.
func (ls *LocomotionSystem) ApplyConfig(w *ecs.World, cfg locomotion.Config) error {
	var firstErr error
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if loco.Character != nil {
			if err := loco.Character.SetConfig(cfg); err != nil {
				log.Printf("LocomotionSystem: entity %s rejected tuning: %v", e, err)
				if firstErr == nil {
					firstErr = err
				}
				return
			}
		}
		loco.Config = cfg
	})
	return firstErr
}
