package render

import (
	"math"
	"strings"

	"github.com/milk9111/starstruck/common"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/locomotion"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// retargetDistance is how far the target may move from the current tween's
// end point before the tween is restarted toward it.
const retargetDistance = 0.5

var easings = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"inquad":    ease.InQuad,
	"outquad":   ease.OutQuad,
	"inoutquad": ease.InOutQuad,
	"outcubic":  ease.OutCubic,
	"outsine":   ease.OutSine,
	"inoutsine": ease.InOutSine,
	"outexpo":   ease.OutExpo,
}

func easingByName(name string) ease.TweenFunc {
	if fn, ok := easings[strings.ToLower(name)]; ok {
		return fn
	}
	return ease.OutQuad
}

// CameraSystem eases the camera toward its target and, when asked to, turns
// the view so the target's local up points up on screen.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity

	tweenX, tweenY *gween.Tween
	endX, endY     float64
	snapped        bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Reset forgets the tracked entities after a level rebuild.
func (cs *CameraSystem) Reset() {
	*cs = CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		e, ok := w.First(component.CameraComponent.Kind().ID())
		if !ok {
			return
		}
		cs.camEntity = e
		cs.targetEntity = 0
		cs.snapped = false
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !cs.snapped {
		camTransform.X, camTransform.Y = target.X, target.Y
		cs.endX, cs.endY = target.X, target.Y
		cs.snapped = true
	}

	if math.Abs(target.X-cs.endX) > retargetDistance || math.Abs(target.Y-cs.endY) > retargetDistance {
		fn := easingByName(cam.Easing)
		duration := float32(cam.FollowSeconds)
		cs.tweenX = gween.New(float32(camTransform.X), float32(target.X), duration, fn)
		cs.tweenY = gween.New(float32(camTransform.Y), float32(target.Y), duration, fn)
		cs.endX, cs.endY = target.X, target.Y
	}

	dt := float32(common.FixedDT)
	if cs.tweenX != nil {
		x, done := cs.tweenX.Update(dt)
		camTransform.X = float64(x)
		if done {
			cs.tweenX = nil
		}
	}
	if cs.tweenY != nil {
		y, done := cs.tweenY.Update(dt)
		camTransform.Y = float64(y)
		if done {
			cs.tweenY = nil
		}
	}

	wantRotation := 0.0
	if cam.AlignToUp {
		if loco, ok := ecs.Get(w, cs.targetEntity, component.LocomotionComponent.Kind()); ok && loco.Character != nil {
			wantRotation = locomotion.FacingAngle(loco.Character.LocalUp())
		}
	}
	camTransform.Rotation = common.LerpAngle(camTransform.Rotation, wantRotation, 0.12)
}

// ViewFor builds the draw view from the camera entity, or a view centred on
// the origin when there is no camera.
func ViewFor(w *ecs.World, screenW, screenH float64) View {
	v := View{Zoom: 1, ScreenW: screenW, ScreenH: screenH}
	e, ok := w.First(component.CameraComponent.Kind().ID())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		v.Zoom = cam.Zoom
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		v.CenterX, v.CenterY, v.Rotation = t.X, t.Y, t.Rotation
	}
	return v
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind().ID()); ok {
			return e
		}
	}
	return 0
}
