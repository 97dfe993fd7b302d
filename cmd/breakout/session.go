package main

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// session is everything a game is built from, with the documents a
// recording needs to rebuild it.
type session struct {
	opts       breakout.Options
	configYAML []byte
	stagesYAML []byte
}

// loadSession resolves config, difficulty and stages from the flags.
func loadSession(configPath, difficulty, stagesDir string) (session, error) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		return session{}, err
	}

	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return session{}, err
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return session{}, err
	}

	stages := breakout.BuiltinStages()
	if stagesDir != "" {
		stages, err = breakout.LoadStagesDir(stagesDir)
		if err != nil {
			return session{}, err
		}
		if len(stages) == 0 {
			return session{}, fmt.Errorf("no stages found in %s", stagesDir)
		}
	}

	cfgYAML, err := config.Marshal(cfg)
	if err != nil {
		return session{}, fmt.Errorf("encoding config: %w", err)
	}
	stagesYAML, err := breakout.MarshalStages(stages)
	if err != nil {
		return session{}, fmt.Errorf("encoding stages: %w", err)
	}

	return session{
		opts:       breakout.Options{Config: cfg, Stages: stages},
		configYAML: cfgYAML,
		stagesYAML: stagesYAML,
	}, nil
}
