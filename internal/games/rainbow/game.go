// Package rainbow adapts the Rainbow Islands simulation to the arcade
// platform. Each builtin level is registered as its own game.
package rainbow

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow/sim"
	"github.com/vovakirdan/rainbow-arcade/internal/registry"
)

// HoldTicks is how long a terminal key press keeps a movement intent alive.
// Terminals only report presses and auto-repeat, never releases.
const HoldTicks = 8

// Run outcomes reported to the score store.
const (
	OutcomeCleared = "cleared"
	OutcomeCaught  = "caught"
	OutcomeFell    = "fell"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives simulation events. Silent unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by all rainbow games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l.WithPrefix("rainbow")
}

// Game wraps a sim.World for one level.
type Game struct {
	manifest sim.LevelManifest
	world    *sim.World
	cfg      config.RainbowConfig
	pending  *config.RainbowConfig // Applied on the next restart
	runtime  core.RuntimeConfig
	err      error // Set when the world could not be built

	paused  bool
	outcome string

	// Terminal hold emulation
	holdInput bool
	leftHold  int
	rightHold int

	shootDown bool // Shoot was held last tick; one rainbow per press
}

// New creates a game for the given level.
func New(manifest sim.LevelManifest) *Game {
	return &Game{manifest: manifest, holdInput: true}
}

// ID returns the level ID, which doubles as the game ID.
func (g *Game) ID() string {
	return g.manifest.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.manifest.Name
}

// SetHeldInput switches terminal hold emulation on or off. Frontends that
// report real key state every tick turn it off.
func (g *Game) SetHeldInput(enabled bool) {
	g.holdInput = enabled
}

// ApplyConfig queues a new configuration. It takes effect on the next
// Reset or restart so a run in progress is never re-tuned mid-flight.
func (g *Game) ApplyConfig(cfg config.RainbowConfig) {
	g.pending = &cfg
	logger.Info("config queued for next restart", "level", g.manifest.ID)
}

// Reset loads configuration and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg := g.loadConfig()
	world, err := sim.NewWorld(cfg, g.manifest)
	if err != nil {
		logger.Error("cannot build level", "level", g.manifest.ID, "err", err)
		g.err = err
		g.world = nil
		return
	}

	g.cfg = cfg
	g.world = world
	g.err = nil
	g.paused = false
	g.outcome = ""
	g.leftHold, g.rightHold = 0, 0
	g.shootDown = false
	logger.Info("level started", "level", g.manifest.ID, "enemies", len(g.manifest.Enemies))
}

// loadConfig picks the queued config if any, otherwise loads from disk,
// then applies the difficulty preset.
func (g *Game) loadConfig() config.RainbowConfig {
	var cfg config.RainbowConfig
	if g.pending != nil {
		cfg = *g.pending
		g.pending = nil
	} else {
		var err error
		cfg, err = config.LoadRainbow(configPath)
		if err != nil {
			logger.Warn("falling back to default config", "err", err)
			cfg = config.DefaultRainbowConfig()
		}
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyRainbowPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.world.State() != sim.StatePlaying {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	// A finished run stays frozen until restart
	if g.world.State() != sim.StatePlaying {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		logger.Debug("pause toggled", "paused", g.paused)
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	report := g.world.Tick(g.translate(in))
	g.observe(report)

	return core.StepResult{State: g.State()}
}

// restart swaps in a fresh world. A queued config rebuilds from scratch.
func (g *Game) restart() {
	if g.pending != nil {
		g.Reset(g.runtime)
		return
	}
	g.world = g.world.Reset()
	g.paused = false
	g.outcome = ""
	g.leftHold, g.rightHold = 0, 0
	g.shootDown = false
	logger.Info("level restarted", "level", g.manifest.ID)
}

// translate turns platform actions into a simulation input snapshot.
func (g *Game) translate(in core.InputFrame) sim.Input {
	left := in.Has(core.ActionLeft)
	right := in.Has(core.ActionRight)

	if g.holdInput {
		switch {
		case right:
			g.rightHold, g.leftHold = HoldTicks, 0
		case left:
			g.leftHold, g.rightHold = HoldTicks, 0
		}
		left = g.leftHold > 0
		right = g.rightHold > 0
		if g.leftHold > 0 {
			g.leftHold--
		}
		if g.rightHold > 0 {
			g.rightHold--
		}
	}

	shoot := in.Has(core.ActionShoot)
	fire := shoot && !g.shootDown
	g.shootDown = shoot

	return sim.Input{
		MoveLeft:  left,
		MoveRight: right,
		Jump:      in.Has(core.ActionJump),
		Shoot:     fire,
		Restart:   in.Has(core.ActionRestart),
	}
}

// observe logs the tick's events and records how the run ended.
func (g *Game) observe(report sim.TickReport) {
	for _, ev := range report.Events {
		switch ev.Kind {
		case sim.EventEnemyKilled:
			logger.Debug("enemy killed", "enemy", ev.Enemy, "cause", ev.Cause, "score", report.Score)
		case sim.EventFruitCollected:
			logger.Debug("fruit collected", "points", ev.Points, "score", report.Score)
		case sim.EventBridgeDissolving:
			logger.Debug("bridge dissolving", "bridge", ev.Bridge, "cause", ev.Cause)
		case sim.EventPlayerFell:
			g.outcome = OutcomeFell
			logger.Info("player fell", "level", g.manifest.ID, "score", report.Score, "tick", ev.Tick)
		case sim.EventPlayerCaught:
			g.outcome = OutcomeCaught
			logger.Info("player caught", "level", g.manifest.ID, "score", report.Score, "tick", ev.Tick)
		case sim.EventLevelComplete:
			g.outcome = OutcomeCleared
			logger.Info("level complete", "level", g.manifest.ID, "score", report.Score, "tick", ev.Tick)
		default:
			logger.Debug(ev.Kind.String(), "bridge", ev.Bridge, "tick", ev.Tick)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	state := g.world.State()
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: state != sim.StatePlaying,
		Won:      state == sim.StateLevelComplete,
		Paused:   g.paused,
	}
}

// Outcome reports how the last run ended, or "" while it is in progress.
func (g *Game) Outcome() string {
	return g.outcome
}

// Ticks returns how many ticks the current run has lasted.
func (g *Game) Ticks() int {
	if g.world == nil {
		return 0
	}
	return g.world.Ticks()
}

// View returns the current world snapshot. ok is false if no world exists.
func (g *Game) View() (view sim.View, ok bool) {
	if g.world == nil {
		return sim.View{}, false
	}
	return g.world.View(), true
}

// Err returns the error that prevented the level from loading, if any.
func (g *Game) Err() error {
	return g.err
}

// Register every builtin level with the registry
func init() {
	for _, m := range sim.BuiltinLevels() {
		registry.Register(m.ID, func() registry.Game {
			return New(m)
		})
	}
}
