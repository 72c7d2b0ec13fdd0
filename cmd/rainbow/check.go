package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow/sim"
)

var checkCmd = &cobra.Command{
	Use:   "check [config]",
	Short: "Validate a config against every level",
	Long: `Load a config file (or the one 'play' would use) and check that it is
valid and that every builtin level can be built with it.

Examples:
  rainbow check
  rainbow check ./my-rainbow.yaml
  rainbow check --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

var flagCheckDifficulty string

func init() {
	checkCmd.Flags().StringVar(&flagCheckDifficulty, "difficulty", "", "Apply a difficulty preset before checking")
}

func runCheck(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	source := config.Source(path)
	if source == "" {
		source = "built-in defaults"
	}

	cfg, err := config.LoadRainbow(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", source, err)
		os.Exit(1)
	}
	config.ApplyRainbowPreset(&cfg, config.ParsePreset(flagCheckDifficulty))

	failed := false
	for _, m := range sim.BuiltinLevels() {
		if err := m.Validate(cfg); err != nil {
			fmt.Printf("  FAIL  %-10s %v\n", m.ID, err)
			failed = true
			continue
		}
		fmt.Printf("  ok    %-10s %d platforms, %d enemies\n", m.ID, len(m.Platforms), len(m.Enemies))
	}

	if failed {
		fmt.Fprintf(os.Stderr, "%s: some levels cannot be built\n", source)
		os.Exit(1)
	}
	fmt.Printf("%s: ok\n", source)
}
