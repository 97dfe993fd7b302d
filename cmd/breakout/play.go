package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRecord bool
	flagMute   bool
	flagMusic  bool
	flagNoCRT  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a breakout session in this terminal.

Controls:
  Left/A, Right/D  - Move the paddle
  Space/Up         - Launch the ball, fire lasers
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Save a screenshot to ~/.breakout/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Five hearts, wider paddle, slower ball, more upgrades
  normal - Config as loaded
  hard   - Two hearts, narrower paddle, faster ball, fewer upgrades

Examples:
  breakout play
  breakout play --difficulty hard
  breakout play --seed 42 --record
  breakout play --config ./my-breakout.yaml --stages ./my-stages`,
	Run: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session to the replay database")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().BoolVar(&flagMusic, "music", false, "Play background music")
	cmd.Flags().BoolVar(&flagNoCRT, "no-crt", false, "Disable the scanline overlay")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fail("%v", err)
	}
}

func play() error {
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, flagLogLevel)
	if err != nil {
		return err
	}

	sess, err := loadSession(flagConfig, flagDifficulty, flagStagesDir)
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Sound is optional; a missing device leaves the game silent
	var player audio.Player = audio.Nop{}
	if !flagMute {
		synth := audio.NewSynth()
		if err := synth.Init(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "error", err)
		} else {
			defer synth.Close()
			player = synth
			if flagMusic {
				synth.StartMusic(0.05)
			}
		}
	}

	opts := sess.opts
	opts.Audio = player
	opts.Logger = logger
	game := breakout.New(opts)

	tuiOpts := tui.Options{
		HoldTicks: opts.Config.Input.HoldTicks,
		CRT:       !flagNoCRT,
		ShowHelp:  true,
		Logger:    logger,
	}
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		tuiOpts.ScreenshotDir = filepath.Join(home, ".breakout", "screenshots")
	}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
			// Continue without recording - game still works
			store = nil
		} else {
			defer store.Close()
			tuiOpts.NewRecorder = func(rt core.RuntimeConfig) *storage.Recorder {
				return storage.NewRecorder(rt, sess.configYAML, sess.stagesYAML)
			}
		}
	}

	final, err := tui.Run(tui.NewModel(game, cfg, tuiOpts))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if replay := final.Replay(); store != nil && replay != nil {
		id, err := store.SaveReplay(*replay)
		if err != nil {
			return err
		}
		logger.Info("session recorded", "id", id, "ticks", replay.Ticks(), "outcome", replay.Outcome)
		fmt.Printf("Recorded session %s (%d ticks, %s)\n", id, replay.Ticks(), replay.Outcome)
		fmt.Printf("Run 'breakout replays verify %s' to re-simulate it.\n", id)
	}
	return nil
}
