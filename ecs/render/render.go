package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/locomotion"
	"golang.org/x/image/colornames"
)

type Palette struct {
	Background color.RGBA
	Star       color.RGBA
	Player     color.RGBA
	Reach      color.RGBA
	Bounds     color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: colornames.Midnightblue,
		Star:       colornames.Gold,
		Player:     colornames.Khaki,
		Reach:      color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0x30},
		Bounds:     colornames.Slategray,
	}
}

// Renderer draws the world with vector shapes only.
type Renderer struct {
	Palette Palette
	// Debug adds planet reach rings, contact normals and the physics shapes.
	Debug bool
	// Field is only read in debug mode, to mark each character's dominant
	// planet.
	Field *gravity.Field
	frame int
}

func NewRenderer(p Palette) *Renderer {
	return &Renderer{Palette: p}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image, view View, space *cp.Space) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.frame++
	screen.Fill(r.Palette.Background)

	r.drawBounds(w, screen, view)
	r.drawPlanets(w, screen, view)
	r.drawStars(w, screen, view)
	r.drawPlayers(w, screen, view)

	if r.Debug {
		drawDominantPull(w, r.Field, screen, view)
		if space != nil {
			cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, view: view})
		}
	}
}

func (r *Renderer) drawBounds(w *ecs.World, screen *ebiten.Image, view View) {
	e, ok := w.First(component.LevelBoundsComponent.Kind().ID())
	if !ok {
		return
	}
	b, _ := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	corners := []cp.Vector{{X: b.MinX, Y: b.MinY}, {X: b.MaxX, Y: b.MinY}, {X: b.MaxX, Y: b.MaxY}, {X: b.MinX, Y: b.MaxY}}
	strokePolygon(screen, view, corners, 2, r.Palette.Bounds)
}

func (r *Renderer) drawPlanets(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach(w, component.PlanetComponent.Kind(), func(_ ecs.Entity, pc *component.Planet) {
		p := pc.Planet
		if p == nil {
			return
		}
		if !view.Visible(p.Position(), p.Reach()) {
			return
		}
		x, y := view.ToScreen(p.Position())
		if r.Debug && p.EffectiveRange() > 0 {
			vector.StrokeCircle(screen, x, y, view.Scale(p.Reach()), 1, r.Palette.Reach, true)
		}
		vector.DrawFilledCircle(screen, x, y, view.Scale(p.Radius()), pc.Color, true)
	})
}

func (r *Renderer) drawStars(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pu *component.Pickup, t *component.Transform) {
		if pu.Collected {
			return
		}
		pulse := 1 + 0.15*math.Sin(float64(r.frame)*0.08+pu.BobPhase)
		x, y := view.ToScreen(cp.Vector{X: t.X, Y: t.Y})
		vector.DrawFilledCircle(screen, x, y, view.Scale(pu.Radius*pulse), r.Palette.Star, true)
	})
}

func (r *Renderer) drawPlayers(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		feet := cp.Vector{X: t.X, Y: t.Y}
		up := cp.ForAngle(t.Rotation + math.Pi/2)
		right := up.ReversePerp()
		half := pb.Width / 2
		corners := []cp.Vector{
			feet.Add(right.Mult(-half)),
			feet.Add(right.Mult(half)),
			feet.Add(right.Mult(half)).Add(up.Mult(pb.Height)),
			feet.Add(right.Mult(-half)).Add(up.Mult(pb.Height)),
		}
		fillPolygon(screen, view, corners, r.Palette.Player)

		// a visor on the side the character faces
		eye := feet.Add(up.Mult(pb.Height * 0.75)).Add(right.Mult(half * 0.4))
		ex, ey := view.ToScreen(eye)
		vector.DrawFilledCircle(screen, ex, ey, view.Scale(2), colornames.Black, true)

		if !r.Debug {
			return
		}
		loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind())
		if !ok || loco.Character == nil {
			return
		}
		head := feet.Add(loco.Character.LocalUp().Mult(pb.Height * 1.6))
		clr := colornames.Orange
		if loco.Character.State() == locomotion.Grounded {
			clr = colornames.Lime
		}
		strokeLine(screen, view, feet, head, 1, clr)
	})
}

func strokeLine(screen *ebiten.Image, view View, a, b cp.Vector, width float32, clr color.Color) {
	x1, y1 := view.ToScreen(a)
	x2, y2 := view.ToScreen(b)
	vector.StrokeLine(screen, x1, y1, x2, y2, width, clr, true)
}

func strokePolygon(screen *ebiten.Image, view View, verts []cp.Vector, width float32, clr color.Color) {
	for i := range verts {
		strokeLine(screen, view, verts[i], verts[(i+1)%len(verts)], width, clr)
	}
}

func fillPolygon(screen *ebiten.Image, view View, verts []cp.Vector, clr color.Color) {
	if len(verts) < 3 {
		return
	}
	var path vector.Path
	x, y := view.ToScreen(verts[0])
	path.MoveTo(x, y)
	for _, v := range verts[1:] {
		x, y := view.ToScreen(v)
		path.LineTo(x, y)
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}
