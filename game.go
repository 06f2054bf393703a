package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starstruck/common"
	"github.com/milk9111/starstruck/ecs"
	"github.com/milk9111/starstruck/ecs/component"
	"github.com/milk9111/starstruck/ecs/entity"
	"github.com/milk9111/starstruck/ecs/render"
	"github.com/milk9111/starstruck/ecs/system"
	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/levels"
	"github.com/milk9111/starstruck/prefabs"
	"github.com/milk9111/starstruck/sound"
)

type Game struct {
	world *ecs.World
	field *gravity.Field
	level *levels.Level
	specs *prefabs.BuildSpecs

	tieBreak string

	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	loco      *system.LocomotionSystem
	goal      *system.GoalSystem
	camera    *render.CameraSystem

	renderer *render.Renderer
	hud      *render.HUD
	sounds   *sound.Controller
	watcher  *prefabs.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	debug   bool

	// set by the pause menu and hot reload, honoured at the start of the
	// next Update so no step sees a half-built world
	restartRequested bool
	rebuildRequested bool
}

func NewGame(levelName string, debug bool, tieBreak string) (*Game, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, fmt.Errorf("game: level %s: %w", levelName, err)
	}

	g := &Game{
		world:    ecs.NewWorld(),
		level:    lvl,
		tieBreak: tieBreak,
		debug:    debug,
		physics:  system.NewPhysicsSystem(common.FixedDT),
		goal:     system.NewGoalSystem(),
		camera:   render.NewCameraSystem(),
		hud:      render.NewHUD(),
	}
	if err := g.loadSpecs(); err != nil {
		return nil, err
	}
	g.field, err = entity.BuildLevel(g.world, lvl, g.specs)
	if err != nil {
		return nil, err
	}
	g.loco = system.NewLocomotionSystem(g.field, common.FixedDT)

	palette := render.DefaultPalette()
	palette.Star = g.specs.Gravity.StarColor.RGBA8(palette.Star)
	palette.Player = g.specs.Player.Color.RGBA8(palette.Player)
	g.renderer = render.NewRenderer(palette)
	g.renderer.Debug = debug
	g.renderer.Field = g.field

	var changes <-chan string
	if _, err := os.Stat(prefabs.Dir); err == nil {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
			changes = w.Events
		}
	}
	tuning := system.NewTuningReloadSystem(changes, g.loco, g.goal)
	tuning.OnGravityChange = func() { g.rebuildRequested = true }

	g.scheduler = ecs.NewScheduler(
		NewInputSystem(),
		tuning,
		g.loco,
		g.physics,
		system.NewPickupCollectSystem(),
		g.goal,
		g.camera,
	)

	sounds, err := sound.NewController(newEbitenAudio(), sound.DefaultCues())
	if err != nil {
		log.Printf("game: sound disabled: %v", err)
	} else {
		g.sounds = sounds
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) loadSpecs() error {
	specs, err := prefabs.LoadBuildSpecs()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if g.tieBreak != "" {
		specs.Player.TieBreak = g.tieBreak
		if _, err := specs.Player.LocomotionConfig(); err != nil {
			return fmt.Errorf("game: -tiebreak: %w", err)
		}
	}
	g.specs = specs
	return nil
}

func (g *Game) LevelName() string {
	if g.level == nil {
		return ""
	}
	return g.level.Name
}

func (g *Game) Update() error {
	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if debugTogglePressed() {
		g.debug = !g.debug
		g.renderer.Debug = g.debug
	}
	if restartPressed() {
		g.restartRequested = true
	}
	g.drainWatcherErrors()

	if g.rebuildRequested {
		g.rebuild()
	} else if g.restartRequested {
		g.restart()
	}

	g.scheduler.Update(g.world)
	g.playCues(g.world.Events().Drain())
	g.sounds.Tick()
	return nil
}

// restart rebuilds the current level into the existing field.
func (g *Game) restart() {
	g.restartRequested = false
	g.physics.Reset()
	g.camera.Reset()
	if err := entity.ResetLevel(g.world, g.field, g.level, g.specs); err != nil {
		log.Printf("game: restart %s: %v", g.level.Name, err)
		return
	}
	g.loco.SetField(g.world, g.field)
}

// rebuild reloads every tuning file and builds a new field, for changes
// that cannot be applied to a live field.
func (g *Game) rebuild() {
	g.rebuildRequested = false
	g.restartRequested = false
	if err := g.loadSpecs(); err != nil {
		log.Printf("game: %v", err)
		return
	}
	g.world.Clear()
	g.physics.Reset()
	g.camera.Reset()
	field, err := entity.BuildLevel(g.world, g.level, g.specs)
	if err != nil {
		log.Printf("game: rebuild %s: %v", g.level.Name, err)
		return
	}
	g.field = field
	g.renderer.Field = field
	g.loco.SetField(g.world, field)
}

func (g *Game) drainWatcherErrors() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) playCues(events []ecs.Event) {
	if g.sounds == nil {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case ecs.EventJumped:
			g.sounds.PlayOrLog(sound.CueJump)
		case ecs.EventLanded:
			g.sounds.PlayOrLog(sound.CueLand)
		case ecs.EventCollected:
			g.sounds.PlayOrLog(sound.CueCollect)
		case ecs.EventGoal:
			switch ev.Data {
			case component.GoalWon:
				g.sounds.PlayOrLog(sound.CueWin)
			case component.GoalLost:
				g.sounds.PlayOrLog(sound.CueLose)
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	view := render.ViewFor(g.world, common.BaseWidth, common.BaseHeight)
	g.renderer.Draw(g.world, screen, view, g.physics.Space())
	g.hud.Draw(g.world, screen, g.LevelName(), g.debug)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	return g.watcher.Close()
}
