package locomotion

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/common"
	"github.com/milk9111/starstruck/gravity"
)

var (
	ErrNilBody       = errors.New("locomotion: body is nil")
	ErrNilField      = errors.New("locomotion: gravity field is nil")
	ErrInvalidConfig = errors.New("locomotion: invalid config")
)

type State int

const (
	Airborne State = iota
	Grounded
)

func (s State) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// Transition names what changed during one Update.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionLanded: airborne -> grounded from a begin contact.
	TransitionLanded
	// TransitionLaunched: grounded -> airborne from a jump.
	TransitionLaunched
	// TransitionDetached: grounded -> airborne because support was lost.
	TransitionDetached
	// TransitionSwitched: still grounded, now on another touching planet.
	TransitionSwitched
)

func (t Transition) String() string {
	switch t {
	case TransitionLanded:
		return "landed"
	case TransitionLaunched:
		return "launched"
	case TransitionDetached:
		return "detached"
	case TransitionSwitched:
		return "switched"
	default:
		return "none"
	}
}

// Config tunes a Character.
type Config struct {
	// JumpStrength is the impulse magnitude applied along the launch direction.
	JumpStrength float64
	// WalkStep is how far the contact point slides along the surface tangent
	// per step at full left/right input.
	WalkStep float64
	// AirAlignRate is the fraction of the remaining angle closed per step
	// while airborne when turning the body to face away from the pull.
	// 0 leaves the airborne angle alone, 1 snaps.
	AirAlignRate float64
	TieBreak     TieBreak
}

func (c Config) validate() error {
	if !common.IsFinite(c.JumpStrength) || c.JumpStrength < 0 {
		return fmt.Errorf("%w: jump strength %v must be >= 0", ErrInvalidConfig, c.JumpStrength)
	}
	if !common.IsFinite(c.WalkStep) || c.WalkStep < 0 {
		return fmt.Errorf("%w: walk step %v must be >= 0", ErrInvalidConfig, c.WalkStep)
	}
	if !common.IsFinite(c.AirAlignRate) || c.AirAlignRate < 0 || c.AirAlignRate > 1 {
		return fmt.Errorf("%w: air align rate %v must be in [0,1]", ErrInvalidConfig, c.AirAlignRate)
	}
	switch c.TieBreak {
	case TieBreakFirstContact, TieBreakNearestSurface:
	default:
		return fmt.Errorf("%w: unknown tie break %d", ErrInvalidConfig, c.TieBreak)
	}
	return nil
}

// Input is the per-step intent sampled by the input poller.
type Input struct {
	// MoveX walks along the surface: -1 left, +1 right relative to local up.
	MoveX float64
	// Jump requests a launch if the character is grounded.
	Jump bool
}

// GroundedState records what is supporting the character. Planet and
// ContactPoint are meaningful only while Grounded is true.
type GroundedState struct {
	Grounded     bool
	Planet       *gravity.Planet
	ContactPoint cp.Vector
}

// Result reports what one Update did.
type Result struct {
	State      State
	Transition Transition
	Planet     *gravity.Planet
	LocalUp    cp.Vector
	Impulse    cp.Vector
	Force      cp.Vector
}

type touch struct {
	planet *gravity.Planet
	point  cp.Vector
}

// Character drives one body across planet surfaces. Each character keeps its
// own contact bookkeeping; the field is shared read-only.
type Character struct {
	cfg   Config
	body  Body
	field *gravity.Field

	ground   GroundedState
	touching []touch

	launchDirection cp.Vector
	up              cp.Vector
}

// FacingAngle is the body angle whose local +Y axis points along up.
func FacingAngle(up cp.Vector) float64 {
	return common.WrapAngle(up.ToAngle() - math.Pi/2)
}

// NewCharacter creates an airborne character driving body.
func NewCharacter(body Body, field *gravity.Field, cfg Config) (*Character, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if field == nil {
		return nil, ErrNilField
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Character{
		cfg:   cfg,
		body:  body,
		field: field,
		up:    cp.ForAngle(body.Angle() + math.Pi/2),
	}, nil
}

// SetConfig swaps tuning between steps.
func (c *Character) SetConfig(cfg Config) error {
	if c == nil {
		return nil
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Character) Config() Config { return c.cfg }

func (c *Character) Body() Body { return c.body }

// SetField points the character at a rebuilt field and drops any support
// that belonged to the old one.
func (c *Character) SetField(field *gravity.Field) {
	if c == nil || field == nil {
		return
	}
	c.field = field
	c.ground = GroundedState{}
	c.touching = c.touching[:0]
}

func (c *Character) State() State {
	if c == nil || !c.ground.Grounded {
		return Airborne
	}
	return Grounded
}

func (c *Character) Ground() GroundedState { return c.ground }

// LaunchDirection is the local up captured at the last jump.
func (c *Character) LaunchDirection() cp.Vector { return c.launchDirection }

// LocalUp is the up direction used on the most recent step.
func (c *Character) LocalUp() cp.Vector { return c.up }

// Touching returns how many planet contacts are currently open.
func (c *Character) Touching() int { return len(c.touching) }

// Update advances the character one step. It must run once per simulation
// step, after input is sampled and before the physics engine steps. events
// are the contacts reported since the previous Update, in arrival order.
func (c *Character) Update(dt float64, events []ContactEvent, input Input) Result {
	if c == nil || c.body == nil {
		return Result{}
	}
	res := Result{Transition: TransitionNone}

	candidates := c.live(c.applyContacts(events))
	c.touching = c.live(c.touching)

	if c.ground.Grounded {
		c.checkSupport(&res)
	}
	if !c.ground.Grounded {
		if t, ok := c.pick(candidates); ok {
			c.land(t.planet, t.point)
			res.Transition = TransitionLanded
		} else if t, ok := c.pick(c.settling()); ok {
			c.land(t.planet, t.planet.SurfacePoint(c.body.Position(), c.up))
			res.Transition = TransitionLanded
		}
	}

	if c.ground.Grounded {
		if input.Jump {
			res.Impulse = c.launch()
			res.Transition = TransitionLaunched
		} else {
			c.holdSurface(input.MoveX)
		}
	}
	if !c.ground.Grounded {
		res.Force = c.fall(dt)
	}

	res.State = c.State()
	res.Planet = c.ground.Planet
	res.LocalUp = c.up
	return res
}

func (c *Character) applyContacts(events []ContactEvent) []touch {
	var candidates []touch
	for _, ev := range events {
		if ev.Planet == nil {
			continue
		}
		switch ev.Kind {
		case ContactBegin:
			t := touch{planet: ev.Planet, point: ev.Point}
			c.touching = append(c.touching, t)
			candidates = append(candidates, t)
		case ContactEnd:
			c.release(ev.Planet)
			candidates = removeTouch(candidates, ev.Planet)
		}
	}
	return candidates
}

func (c *Character) release(p *gravity.Planet) {
	c.touching = removeTouch(c.touching, p)
}

func removeTouch(ts []touch, p *gravity.Planet) []touch {
	for i, t := range ts {
		if t.planet == p {
			return append(ts[:i], ts[i+1:]...)
		}
	}
	return ts
}

func (c *Character) isTouching(p *gravity.Planet) bool {
	for _, t := range c.touching {
		if t.planet == p {
			return true
		}
	}
	return false
}

// live filters out contacts with planets that have left the field.
func (c *Character) live(ts []touch) []touch {
	kept := ts[:0]
	for _, t := range ts {
		if c.field.Has(t.planet) {
			kept = append(kept, t)
		}
	}
	clear(ts[len(kept):])
	return kept
}

// checkSupport ends or moves grounding when the current planet is gone or no
// longer touched.
func (c *Character) checkSupport(res *Result) {
	current := c.ground.Planet
	if !c.field.Has(current) {
		log.Printf("locomotion: supporting planet %q left the field, detaching", current.Name())
		c.detach()
		res.Transition = TransitionDetached
		return
	}
	if c.isTouching(current) {
		return
	}
	if next, ok := c.pick(c.touching); ok {
		pos := c.body.Position()
		c.land(next.planet, next.planet.SurfacePoint(pos, c.up))
		res.Transition = TransitionSwitched
		return
	}
	c.detach()
	res.Transition = TransitionDetached
}

// settling returns the contacts that stayed open through an airborne phase
// while the body is no longer moving away from the planet. A jump lower than
// the contact sensor never ends its contact, so no new begin arrives.
func (c *Character) settling() []touch {
	var ts []touch
	pos := c.body.Position()
	vel := c.body.Velocity()
	for _, t := range c.touching {
		if vel.Dot(t.planet.Position().Sub(pos)) >= 0 {
			ts = append(ts, t)
		}
	}
	return ts
}

func (c *Character) pick(ts []touch) (touch, bool) {
	if len(ts) == 0 {
		return touch{}, false
	}
	if c.cfg.TieBreak != TieBreakNearestSurface || len(ts) == 1 {
		return ts[0], true
	}
	planets := make([]*gravity.Planet, len(ts))
	for i, t := range ts {
		planets[i] = t.planet
	}
	nearest, ok := gravity.NearestOf(c.body.Position(), planets)
	if !ok {
		return ts[0], true
	}
	for _, t := range ts {
		if t.planet == nearest {
			return t, true
		}
	}
	return ts[0], true
}

func (c *Character) land(p *gravity.Planet, point cp.Vector) {
	c.ground = GroundedState{Grounded: true, Planet: p, ContactPoint: point}
	c.up = p.LocalUp(point, c.up)
}

func (c *Character) detach() {
	c.ground = GroundedState{}
}

// holdSurface pins the body to the contact point, stands it upright on the
// local up, and walks the contact point along the tangent.
func (c *Character) holdSurface(moveX float64) {
	p := c.ground.Planet
	up := p.LocalUp(c.ground.ContactPoint, c.up)
	point := c.ground.ContactPoint
	if moveX != 0 && c.cfg.WalkStep > 0 {
		right := up.ReversePerp()
		point = point.Add(right.Mult(common.Clamp(moveX, -1, 1) * c.cfg.WalkStep))
	}
	point = p.SurfacePoint(point, up)
	up = p.LocalUp(point, up)

	c.ground.ContactPoint = point
	c.up = up
	c.body.SetAngle(FacingAngle(up))
	c.body.SetPosition(point)
	c.body.SetVelocityVector(cp.Vector{})
}

func (c *Character) launch() cp.Vector {
	p := c.ground.Planet
	pos := c.body.Position()
	dir := p.LocalUp(pos, c.up)
	c.launchDirection = dir
	c.up = dir
	impulse := dir.Mult(c.cfg.JumpStrength)
	c.body.ApplyImpulseAtWorldPoint(impulse, pos)
	c.detach()
	return impulse
}

func (c *Character) fall(dt float64) cp.Vector {
	pos := c.body.Position()
	force := c.field.ForceAt(pos)
	if force.LengthSq() == 0 {
		return force
	}
	c.body.ApplyForceAtWorldPoint(force, pos)
	c.up = force.Neg().Normalize()
	if c.cfg.AirAlignRate > 0 && dt > 0 {
		c.body.SetAngle(common.LerpAngle(c.body.Angle(), FacingAngle(c.up), c.cfg.AirAlignRate))
	}
	return force
}
