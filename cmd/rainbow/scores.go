package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rainbow-arcade/internal/platform/tui"
	"github.com/vovakirdan/rainbow-arcade/internal/registry"
	"github.com/vovakirdan/rainbow-arcade/internal/storage"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best runs for a level",
	Long: `Display the top 10 runs for the specified level (islands by default).

With --interactive, opens a browsable scoreboard for every level.

Examples:
  rainbow scores
  rainbow scores tower
  rainbow scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all levels in a scoreboard")
}

func runScores(cmd *cobra.Command, args []string) {
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

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		}
		return
	}

	// Get level title
	game, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
		return
	}

	runs, err := store.TopRuns(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	// Display runs
	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rainbow play %s' to set the first high score!\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Result", "Ticks", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "------", "-----", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8s  %-6d  %s\n", i+1, r.Score, r.Outcome, r.Ticks, dateStr)
	}

	// Show summary
	fmt.Println()
	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Clears: %d\n", stats.HighScore, stats.Runs, stats.Clears)
		if stats.FastestClear > 0 {
			fmt.Printf("Fastest clear: %d ticks\n", stats.FastestClear)
		}
	}
}
