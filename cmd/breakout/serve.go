package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the breakout SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own single-player session sized to the
client's terminal. Sessions are silent and not recorded.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.breakout/host_key

Examples:
  breakout serve                           # Listen on :23234 with auto-generated key
  breakout serve --ssh :2222               # Listen on port 2222
  breakout serve --host-key ./my_host_key  # Use specific host key
  breakout serve --difficulty hard         # Every session plays on hard

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		fail("%v", err)
	}
	logger.SetPrefix("breakout-ssh")

	sess, err := loadSession(flagConfig, flagDifficulty, flagStagesDir)
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	newGame := func(sessionLogger *log.Logger) tui.Game {
		opts := sess.opts
		opts.Logger = sessionLogger
		return breakout.New(opts)
	}
	opts := tui.Options{
		HoldTicks: sess.opts.Config.Input.HoldTicks,
		CRT:       true,
		ShowHelp:  true,
		Logger:    logger,
	}

	server, err := tui.NewSSHServer(cfg, newGame, opts)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting breakout SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
