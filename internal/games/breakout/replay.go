package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Replay resets a headless game and feeds it a recorded input log.
// The returned game is in the final state of the recording.
func Replay(opts Options, runtime core.RuntimeConfig, frames []core.InputFrame) *Game {
	g := New(opts)
	g.Reset(runtime)
	for _, in := range frames {
		g.Step(in)
	}
	return g
}

// ReplayOptions rebuilds session options from the recorded config and
// stage documents.
func ReplayOptions(cfgYAML, stagesYAML []byte) (Options, error) {
	cfg, err := config.Parse(cfgYAML)
	if err != nil {
		return Options{}, fmt.Errorf("breakout: replay config: %w", err)
	}
	stages, err := ParseStages(stagesYAML)
	if err != nil {
		return Options{}, fmt.Errorf("breakout: replay stages: %w", err)
	}
	if len(stages) == 0 {
		return Options{}, fmt.Errorf("breakout: replay stages: %w", ErrEmptyStage)
	}
	return Options{Config: cfg, Stages: stages}, nil
}
