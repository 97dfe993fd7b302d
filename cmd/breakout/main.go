// breakout is a terminal brick breaker.
//
// Usage:
//
//	breakout                      - Play (same as "breakout play")
//	breakout play                 - Play a session in this terminal
//	breakout stages               - List the stages of a session
//	breakout replays list         - Browse recorded sessions
//	breakout replays verify <id>  - Re-simulate a recording and compare its final state
//	breakout serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set replay database path (default: ~/.breakout/replays.db)
//	--log-level <level> - debug, info, warn or error (default: info)
//	--log-file <path>   - Log destination while the TUI owns the terminal
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Session flags shared by play, stages and serve
	flagConfig     string
	flagDifficulty string
	flagStagesDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - a brick breaker for your terminal",
	Long: `Breakout is a terminal brick breaker. Bounce the ball off the paddle,
break every block and catch upgrades as they fall.

Available commands:
  play     - Play a session (default)
  stages   - List the stages of a session
  replays  - Browse and verify recorded sessions
  serve    - Start SSH server for remote play

Examples:
  breakout
  breakout play --difficulty hard --record
  breakout stages --stages ./my-stages
  breakout replays verify 3f2a9c
  breakout serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.breakout/breakout.log", "Log file for TUI sessions")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagStagesDir, "stages", "", "Directory of stage YAML files (built-in stages when empty)")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints err and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
