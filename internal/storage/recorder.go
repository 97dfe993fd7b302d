package storage

import "github.com/vovakirdan/tui-breakout/internal/core"

// Replay outcomes.
const (
	OutcomeWon      = "won"
	OutcomeGameOver = "game_over"
	OutcomeQuit     = "quit"
)

// Recorder accumulates the input log of a running session.
type Recorder struct {
	replay Replay
}

// NewRecorder starts a recording for a session reset with runtime.
// cfg and stages are the YAML documents the session was built from.
func NewRecorder(runtime core.RuntimeConfig, cfg, stages []byte) *Recorder {
	return &Recorder{replay: Replay{
		Seed:     runtime.Seed,
		ScreenW:  runtime.ScreenW,
		ScreenH:  runtime.ScreenH,
		TickRate: runtime.TickRate,
		Config:   cfg,
		Stages:   stages,
	}}
}

// Record appends the input of one step.
func (r *Recorder) Record(in core.InputFrame) {
	r.replay.Inputs = append(r.replay.Inputs, in.Bits())
}

// Finish seals the recording with the final state.
func (r *Recorder) Finish(hash uint64, st core.GameState) Replay {
	out := r.replay
	out.FinalHash = hash
	out.FinalStage = st.Stage
	switch {
	case st.Won:
		out.Outcome = OutcomeWon
	case st.GameOver:
		out.Outcome = OutcomeGameOver
	default:
		out.Outcome = OutcomeQuit
	}
	return out
}

// Runtime returns the runtime config the recording started with.
func (r Replay) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	}
}

// Frames decodes the input log.
func (r Replay) Frames() []core.InputFrame {
	out := make([]core.InputFrame, len(r.Inputs))
	for i, b := range r.Inputs {
		out[i] = core.InputFromBits(b)
	}
	return out
}
