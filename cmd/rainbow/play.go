package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow"
	"github.com/vovakirdan/rainbow-arcade/internal/platform/tui"
	"github.com/vovakirdan/rainbow-arcade/internal/registry"
	"github.com/vovakirdan/rainbow-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level (islands by default).

Controls:
  Left/Right, A/D   - Walk
  Space/Up/W        - Jump
  X/Z               - Fire a rainbow
  P/Esc             - Pause
  R                 - Restart (after game over or clear)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Longer-lasting bridges, quicker reload, gentle progression
  normal - Start at 30% difficulty, progresses to max
  hard   - Shorter bridges, faster enemies, starts at 70% difficulty
  fixed  - No progression, stays at config's initial level

With --watch the config file is reloaded whenever it changes. A reloaded
config takes effect on the next restart.

Examples:
  rainbow play
  rainbow play tower --difficulty easy
  rainbow play cascade --config ./my-rainbow.yaml --watch
  rainbow play --log-file rainbow.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) {
	levelID := defaultLevel
	if len(args) > 0 {
		levelID = args[0]
	}

	// Check if level exists
	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'rainbow list' to see available levels.")
		os.Exit(1)
	}

	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Fail fast on a broken custom config rather than inside the alt screen
	if flagConfig != "" {
		if _, err := config.LoadRainbow(flagConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Set config path and difficulty before creation
	rainbow.SetConfigPath(flagConfig)
	rainbow.SetDifficultyPreset(flagDifficulty)
	rainbow.SetLogger(logger)

	// Create game instance
	game, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		os.Exit(1)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := []tui.Option{tui.WithLogger(logger)}

	var watcher *config.Watcher
	if flagWatch {
		path := config.Source(flagConfig)
		if path == "" {
			fmt.Fprintln(os.Stderr, "Warning: no config file to watch, using built-in defaults")
		} else if watcher, err = config.NewWatcher(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		} else {
			go func() {
				for err := range watcher.Errors {
					logger.Warn("config reload failed", "path", path, "err", err)
				}
			}()
			opts = append(opts, tui.WithConfigUpdates(watcher.Configs))
			logger.Info("watching config", "path", path)
		}
	}

	// Run the game
	runErr := tui.Run(game, store, cfg, opts...)

	// Close resources before potential exit
	if watcher != nil {
		watcher.Close()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
