package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the stages of a session",
	Long: `Shows the stages a session would play, in order.

Examples:
  breakout stages
  breakout stages --stages ./my-stages`,
	Run: runStages,
}

func runStages(_ *cobra.Command, _ []string) {
	sess, err := loadSession(flagConfig, flagDifficulty, flagStagesDir)
	if err != nil {
		fail("%v", err)
	}
	stages := sess.opts.Stages

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range stages {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Println("Stages:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "#", maxIDLen, "ID", "Grid", "Blocks", "Name")
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "-", maxIDLen, "--", "----", "------", "----")

	for i, s := range stages {
		grid := fmt.Sprintf("%dx%d", s.Columns(), len(s.Rows))
		fmt.Printf("  %-3d  %-*s  %-6s  %-6d  %s\n", i+1, maxIDLen, s.ID, grid, s.Destructible(), s.Name)
	}

	fmt.Println()
	fmt.Println("Run 'breakout play' to play them in this order.")
}
