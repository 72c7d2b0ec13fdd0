// Package gui runs a level in a desktop window using Ebitengine.
// It drives the same adapter as the terminal frontend but polls real key
// state each tick, so held keys need no emulation.
package gui

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow"
	"github.com/vovakirdan/rainbow-arcade/internal/registry"
	"github.com/vovakirdan/rainbow-arcade/internal/storage"
)

// Options configures a window session.
type Options struct {
	Store   *storage.Store              // Optional; finished runs are saved here
	Logger  *log.Logger                 // Optional; defaults to discard
	Configs <-chan config.RainbowConfig // Optional hot-reload feed
	Scale   float64                     // Window scale factor, default 1
}

// Game implements ebiten.Game around a rainbow level.
type Game struct {
	level    *rainbow.Game
	opts     Options
	logger   *log.Logger
	runSaved bool
	width    int
	height   int
}

// NewGame prepares a window session for the level.
func NewGame(level *rainbow.Game, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	level.SetHeldInput(false)
	level.Reset(core.DefaultConfig())

	g := &Game{level: level, opts: opts, logger: opts.Logger}
	g.width, g.height = 800, 600
	if v, ok := level.View(); ok {
		g.width, g.height = int(v.ScreenW), int(v.ScreenH)
	}
	return g
}

// Run opens the window and blocks until it is closed.
func Run(level *rainbow.Game, opts Options) error {
	g := NewGame(level, opts)

	ebiten.SetWindowTitle(level.Title())
	ebiten.SetWindowSize(int(float64(g.width)*g.opts.Scale), int(float64(g.height)*g.opts.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(g)
}

// Update polls input and advances the level by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.level.State().Won {
		g.advance()
		return nil
	}

	before := g.level.State()
	state := g.level.Step(pollInput()).State

	if before.GameOver && !state.GameOver {
		g.runSaved = false
	}
	if state.GameOver && !g.runSaved {
		g.saveRun(state)
		g.runSaved = true
	}
	return nil
}

// advance loads the level registered after the current one, if any.
func (g *Game) advance() {
	id, ok := registry.Next(g.level.ID())
	if !ok {
		return
	}
	created, err := registry.Create(id)
	if err != nil {
		g.logger.Warn("could not load next level", "level", id, "err", err)
		return
	}
	next, ok := created.(*rainbow.Game)
	if !ok {
		g.logger.Warn("next level is not a rainbow level", "level", id)
		return
	}

	next.SetHeldInput(false)
	next.Reset(core.DefaultConfig())
	g.level = next
	g.runSaved = false
	ebiten.SetWindowTitle(next.Title())
}

// pollConfig hands over a reloaded config without blocking the frame.
func (g *Game) pollConfig() {
	if g.opts.Configs == nil {
		return
	}
	select {
	case cfg, ok := <-g.opts.Configs:
		if !ok {
			g.opts.Configs = nil
			return
		}
		g.level.ApplyConfig(cfg)
	default:
	}
}

func (g *Game) saveRun(state core.GameState) {
	if g.opts.Store == nil {
		return
	}
	run := storage.Run{
		LevelID: g.level.ID(),
		Score:   state.Score,
		Outcome: g.level.Outcome(),
		Ticks:   g.level.Ticks(),
	}
	if _, err := g.opts.Store.SaveRun(run); err != nil {
		g.logger.Warn("could not save run", "level", run.LevelID, "err", err)
	}
}

// pollInput reads the keyboard into an input frame. Movement and jump
// follow held state; shoot, pause and restart fire once per press.
func pollInput() core.InputFrame {
	in := core.NewInputFrame()
	for action, keys := range heldBindings {
		if anyPressed(keys, ebiten.IsKeyPressed) {
			in.Set(action)
		}
	}
	for action, keys := range pressBindings {
		if anyPressed(keys, inpututil.IsKeyJustPressed) {
			in.Set(action)
		}
	}
	return in
}

var heldBindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionJump:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
}

var pressBindings = map[core.Action][]ebiten.Key{
	core.ActionShoot:   {ebiten.KeyX, ebiten.KeyZ, ebiten.KeyControlLeft},
	core.ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
	core.ActionRestart: {ebiten.KeyR},
}

func anyPressed(keys []ebiten.Key, pressed func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// Layout keeps the logical screen at world size and lets Ebitengine scale it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
