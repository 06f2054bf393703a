package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/common"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/locomotion"
)

const (
	collisionTypePlanet cp.CollisionType = iota + 1
	collisionTypeCharacter
	collisionTypeFoot
	collisionTypePickup
)

const (
	defaultSensorRadius = 4.0
	// footClearance lifts the solid box off the body origin so that only the
	// foot sensor touches the planet while a character stands on it.
	footClearance = 1.0
)

// PhysicsSystem owns the Chipmunk space. World gravity is zero: planets pull
// through locomotion forces, never through the space.
type PhysicsSystem struct {
	space         *cp.Space
	dt            float64
	handlersReady bool

	bodies       map[ecs.Entity]*bodyInfo
	planets      map[ecs.Entity]*cp.Shape
	pickups      map[ecs.Entity]*cp.Shape
	footShapes   map[*cp.Shape]ecs.Entity
	bodyShapes   map[*cp.Shape]ecs.Entity
	planetShapes map[*cp.Shape]*gravity.Planet
	pickupShapes map[*cp.Shape]ecs.Entity

	// staged during Step and flushed into components afterwards
	contacts   map[ecs.Entity][]locomotion.ContactEvent
	pickupHits []ecs.Entity
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	footShape *cp.Shape
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = common.FixedDT
	}
	ps := &PhysicsSystem{dt: dt}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	ps.space = space
	ps.handlersReady = false
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
	ps.planets = make(map[ecs.Entity]*cp.Shape)
	ps.pickups = make(map[ecs.Entity]*cp.Shape)
	ps.footShapes = make(map[*cp.Shape]ecs.Entity)
	ps.bodyShapes = make(map[*cp.Shape]ecs.Entity)
	ps.planetShapes = make(map[*cp.Shape]*gravity.Planet)
	ps.pickupShapes = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity][]locomotion.ContactEvent)
	ps.pickupHits = nil
}

// Reset drops the space and every body in it. Used on level reload.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.reset()
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.ensureHandlers()
	ps.syncPlanets(w)
	ps.syncBodies(w)
	ps.syncPickups(w)

	ps.space.Step(ps.dt)

	ps.flushContacts(w)
	ps.flushPickups(w)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	footHandler := ps.space.NewCollisionHandler(collisionTypeFoot, collisionTypePlanet)
	footHandler.UserData = ps
	footHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		sys.stageFootContact(arb, locomotion.ContactBegin)
		return true
	}
	footHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		sys.stageFootContact(arb, locomotion.ContactEnd)
	}

	pickupHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypePickup)
	pickupHandler.UserData = ps
	pickupHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		if e, ok := sys.pickupShapes[shapeA]; ok {
			sys.pickupHits = append(sys.pickupHits, e)
		} else if e, ok := sys.pickupShapes[shapeB]; ok {
			sys.pickupHits = append(sys.pickupHits, e)
		}
		// sensors never produce a collision response anyway
		return false
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) stageFootContact(arb *cp.Arbiter, kind locomotion.ContactKind) {
	shapeA, shapeB := arb.Shapes()
	e, okA := ps.footShapes[shapeA]
	planetShape := shapeB
	if !okA {
		var okB bool
		e, okB = ps.footShapes[shapeB]
		if !okB {
			return
		}
		planetShape = shapeA
	}
	planet := ps.planetShapes[planetShape]
	if planet == nil {
		return
	}
	ev := locomotion.ContactEvent{Kind: kind, Planet: planet}
	if info := ps.bodies[e]; info != nil && info.body != nil {
		ev.Point = planet.SurfacePoint(info.body.Position(), cp.Vector{X: 0, Y: 1})
	}
	ps.contacts[e] = append(ps.contacts[e], ev)
}

func (ps *PhysicsSystem) syncPlanets(w *ecs.World) {
	for e, shape := range ps.planets {
		if w.IsAlive(e) && ecs.Has(w, e, component.PlanetComponent.Kind()) {
			continue
		}
		// removal runs separate callbacks, staging end contacts
		ps.space.RemoveShape(shape)
		delete(ps.planetShapes, shape)
		delete(ps.planets, e)
	}

	ecs.ForEach(w, component.PlanetComponent.Kind(), func(e ecs.Entity, pc *component.Planet) {
		if pc.Planet == nil || ps.planets[e] != nil {
			return
		}
		p := pc.Planet
		shape := cp.NewCircle(ps.space.StaticBody, p.Radius(), p.Position())
		shape.SetFriction(1)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypePlanet)
		ps.space.AddShape(shape)
		pc.Shape = shape
		ps.planets[e] = shape
		ps.planetShapes[shape] = p
		log.Printf("PhysicsSystem: added %s", p)
	})
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(e, info)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if ps.bodies[e] != nil {
			return
		}
		info := ps.createBody(e, pb, t)
		ps.bodies[e] = info
		pb.Body = info.body
		pb.Shape = info.mainShape
		pb.GroundShape = info.footShape
	})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	width, height := pb.Width, pb.Height
	if width <= 0 || height <= 0 {
		width, height = 16, 24
	}
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}

	// rotation is driven by locomotion, never by contact torque
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
	ps.space.AddBody(body)

	bb := cp.BB{L: -width / 2, B: footClearance, R: width / 2, T: footClearance + height}
	shape := cp.NewBox2(body, bb, 0)
	shape.SetFriction(pb.Friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)
	ps.space.AddShape(shape)
	ps.bodyShapes[shape] = e

	radius := pb.SensorRadius
	if radius <= 0 {
		radius = defaultSensorRadius
	}
	foot := cp.NewCircle(body, radius, cp.Vector{})
	foot.SetSensor(true)
	foot.SetCollisionType(collisionTypeFoot)
	ps.space.AddShape(foot)
	ps.footShapes[foot] = e

	log.Printf("PhysicsSystem: created body for entity %s at (%.1f, %.1f)", e, t.X, t.Y)
	return &bodyInfo{body: body, mainShape: shape, footShape: foot}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.footShape != nil {
		ps.space.RemoveShape(info.footShape)
		delete(ps.footShapes, info.footShape)
	}
	if info.mainShape != nil {
		ps.space.RemoveShape(info.mainShape)
		delete(ps.bodyShapes, info.mainShape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
	delete(ps.contacts, e)
}

func (ps *PhysicsSystem) syncPickups(w *ecs.World) {
	for e, shape := range ps.pickups {
		if pu, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && !pu.Collected {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.pickupShapes, shape)
		delete(ps.pickups, e)
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pu *component.Pickup, t *component.Transform) {
		if pu.Collected || ps.pickups[e] != nil {
			return
		}
		radius := pu.Radius
		if radius <= 0 {
			radius = 8
		}
		shape := cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: t.X, Y: t.Y})
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypePickup)
		ps.space.AddShape(shape)
		pu.Shape = shape
		ps.pickups[e] = shape
		ps.pickupShapes[shape] = e
	})
}

// flushContacts hands staged planet contacts to each character's
// locomotion component, in the order the space reported them.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, events := range ps.contacts {
		if len(events) == 0 {
			continue
		}
		if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok {
			loco.Pending = append(loco.Pending, events...)
		}
		ps.contacts[e] = events[:0]
	}
}

func (ps *PhysicsSystem) flushPickups(w *ecs.World) {
	for _, e := range ps.pickupHits {
		if pu, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok {
			pu.Collected = true
		}
	}
	ps.pickupHits = ps.pickupHits[:0]
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok || info.body == nil {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = info.body.Angle()
	}
}
