// rainbow is a terminal Rainbow Islands: walk, jump and fire rainbow bridges
// to trap every patrolling enemy on the level.
//
// Usage:
//
//	rainbow list               - List available levels
//	rainbow play [level]       - Play a level (default: islands)
//	rainbow scores [level]     - Show best runs for a level
//	rainbow check [config]     - Validate a config against every level
//	rainbow serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import levels to register them
	_ "github.com/vovakirdan/rainbow-arcade/internal/games/rainbow"
)

// defaultLevel is played when no level is named.
const defaultLevel = "islands"

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rainbow",
	Short: "Rainbow Islands - bridge-building platformer in your terminal",
	Long: `Rainbow Islands is a single-screen platformer. Fire rainbows that
arc into walkable bridges, trap enemies under them and collect the
fruit they leave behind. Clear every enemy to win the level.

Available commands:
  list     - Show all levels
  play     - Play a level
  scores   - View best runs
  check    - Validate a config file
  serve    - Start SSH server for remote play

Examples:
  rainbow list
  rainbow play
  rainbow play tower --difficulty hard
  rainbow scores islands --interactive
  rainbow serve --ssh :2222`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}
