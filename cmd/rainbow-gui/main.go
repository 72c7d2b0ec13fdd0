// rainbow-gui plays a Rainbow Islands level in a desktop window.
//
// Usage:
//
//	rainbow-gui [level] [--config path] [--difficulty preset] [--watch]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow/sim"
	"github.com/vovakirdan/rainbow-arcade/internal/platform/gui"
	"github.com/vovakirdan/rainbow-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagDBPath     string
	flagScale      float64
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rainbow-gui [level]",
	Short: "Play Rainbow Islands in a window",
	Long: `Open a window and play a level (islands by default).

Controls:
  Left/Right, A/D   - Walk
  Space/Up/W        - Jump
  X/Z/Ctrl          - Fire a rainbow
  P/Esc             - Pause
  R                 - Restart (after game over or clear)
  Q                 - Quit`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to runs database")
	rootCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func run(cmd *cobra.Command, args []string) error {
	levelID := "islands"
	if len(args) > 0 {
		levelID = args[0]
	}
	manifest, ok := sim.LevelByID(levelID)
	if !ok {
		return fmt.Errorf("unknown level %q", levelID)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true})

	rainbow.SetConfigPath(flagConfig)
	rainbow.SetDifficultyPreset(flagDifficulty)
	rainbow.SetLogger(logger)

	opts := gui.Options{Logger: logger, Scale: flagScale}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	if flagWatch {
		path := config.Source(flagConfig)
		if path == "" {
			logger.Warn("no config file to watch, using built-in defaults")
		} else if watcher, err := config.NewWatcher(path); err != nil {
			logger.Warn("cannot watch config", "path", path, "err", err)
		} else {
			defer watcher.Close()
			go func() {
				for err := range watcher.Errors {
					logger.Warn("config reload failed", "path", path, "err", err)
				}
			}()
			opts.Configs = watcher.Configs
			logger.Info("watching config", "path", path)
		}
	}

	return gui.Run(rainbow.New(manifest), opts)
}
