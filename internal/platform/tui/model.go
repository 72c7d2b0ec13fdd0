package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
	"github.com/vovakirdan/rainbow-arcade/internal/registry"
	"github.com/vovakirdan/rainbow-arcade/internal/storage"
)

// runReporter is implemented by games that can say how a run ended.
type runReporter interface {
	Outcome() string
	Ticks() int
}

// configurable is implemented by games that accept live config updates.
type configurable interface {
	ApplyConfig(cfg config.RainbowConfig)
}

// ConfigMsg carries a reloaded configuration from a watcher.
type ConfigMsg config.RainbowConfig

// Option customises a Model.
type Option func(*Model)

// WithLogger sets the logger for save failures and config reloads.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithConfigUpdates feeds reloaded configs into the running game.
func WithConfigUpdates(ch <-chan config.RainbowConfig) Option {
	return func(m *Model) {
		m.configs = ch
	}
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	configs    <-chan config.RainbowConfig
	quitting   bool
	runSaved   bool // Whether the run has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tea.Batch(tickCmd(m.config.TickRate), waitForConfig(m.configs))
}

// waitForConfig blocks on the next reloaded config. A nil or closed channel
// ends the subscription.
func waitForConfig(ch <-chan config.RainbowConfig) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigMsg(cfg)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigMsg:
		if g, ok := m.game.(configurable); ok {
			g.ApplyConfig(config.RainbowConfig(msg))
			m.logger.Info("config reloaded, applies on restart", "game", m.game.ID())
		}
		return m, waitForConfig(m.configs)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The world has fixed
// dimensions, so only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionConfirm) && m.gameState.Won {
		if next, ok := registry.Next(m.game.ID()); ok {
			m.advance(next)
			m.inputFrame.Clear()
			return m, tickCmd(m.config.TickRate)
		}
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// advance swaps in the next level after a clear.
func (m *Model) advance(id string) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Warn("could not load next level", "level", id, "err", err)
		return
	}
	m.logger.Info("advancing", "from", m.game.ID(), "to", id)
	m.game = game
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
}

// saveRun records the finished run. Failures are logged and play continues.
func (m Model) saveRun() {
	if m.store == nil {
		return
	}

	run := storage.Run{
		LevelID: m.game.ID(),
		Score:   m.gameState.Score,
		Outcome: "over",
	}
	if r, ok := m.game.(runReporter); ok {
		run.Outcome = r.Outcome()
		run.Ticks = r.Ticks()
	}

	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "level", run.LevelID, "err", err)
		return
	}
	m.logger.Debug("run saved", "level", run.LevelID, "score", run.Score, "outcome", run.Outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
