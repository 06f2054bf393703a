package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// HUD prints the star count, the locomotion state and the level result.
type HUD struct {
	face text.Face
}

func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(w *ecs.World, screen *ebiten.Image, levelName string, debug bool) {
	if h == nil || w == nil || screen == nil {
		return
	}

	goal := firstGoal(w)
	line := levelName
	if goal != nil {
		line = fmt.Sprintf("%s  stars %d/%d", levelName, goal.StarsCollected, goal.StarsTotal)
	}
	h.print(screen, line, 12, 12, colornames.White)

	if debug {
		if player, ok := w.First(component.PlayerTagComponent.Kind().ID()); ok {
			if loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind()); ok && loco.Character != nil {
				g := loco.Character.Ground()
				planet := "-"
				if g.Planet != nil {
					planet = g.Planet.Name()
				}
				up := loco.Character.LocalUp()
				h.print(screen, fmt.Sprintf("state %s  planet %s  up (%.2f, %.2f)  contacts %d",
					loco.Character.State(), planet, up.X, up.Y, loco.Character.Touching()), 12, 30, colornames.Lightgray)
			}
		}
		h.print(screen, fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 12, 48, colornames.Lightgray)
	}

	if goal == nil {
		return
	}
	bounds := screen.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2
	switch goal.Status {
	case component.GoalWon:
		h.printCentered(screen, "all stars collected - press R to play again", cx, cy, colornames.Gold)
	case component.GoalLost:
		h.printCentered(screen, "lost in space - press R to retry", cx, cy, colornames.Tomato)
	}
}

func (h *HUD) print(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}

func (h *HUD) printCentered(screen *ebiten.Image, s string, cx, cy float64, clr color.Color) {
	width, height := text.Measure(s, h.face, 0)
	h.print(screen, s, cx-width/2, cy-height/2, clr)
}

func firstGoal(w *ecs.World) *component.Goal {
	e, ok := w.First(component.GoalComponent.Kind().ID())
	if !ok {
		return nil
	}
	goal, _ := ecs.Get(w, e, component.GoalComponent.Kind())
	return goal
}
