package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow/sim"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every builtin level in play order.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := sim.BuiltinLevels()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 5
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "Title", "Enemies")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "-----", "-------")

	// Print levels
	for _, l := range levels {
		fmt.Printf("  %-*s  %-*s  %d\n", maxIDLen, l.ID, maxNameLen, l.Name, len(l.Enemies))
	}

	fmt.Println()
	fmt.Println("Run 'rainbow play <id>' to play a level.")
}
