// Package breakout implements a Breakout/Arkanoid-style brick breaker.
//
// The simulation lives in World and its entities; Game wraps it for the
// frame driver with stage progression, pause and restart.
package breakout

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Minimum playable screen.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// Options configures a Game.
type Options struct {
	Config config.BreakoutConfig
	Stages []Stage      // Played in order; built-ins when empty
	Audio  audio.Player // Nop when nil
	Logger *log.Logger  // Discarded when nil
}

// Game drives a session across stages for the frame driver.
type Game struct {
	opts    Options
	runtime core.RuntimeConfig
	dt      time.Duration
	rng     *rand.Rand

	world    *World
	stageIdx int
	tick     uint64
	paused   bool
	won      bool

	screenTooSmall bool
}

// New creates a game. Call Reset before stepping.
func New(opts Options) *Game {
	if len(opts.Stages) == 0 {
		opts.Stages = BuiltinStages()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset initializes or restarts the session from the first stage.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.dt = time.Second / time.Duration(runtime.TickRate)

	seed := uint64(runtime.Seed) //#nosec G115 -- seed bits only
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
	g.stageIdx = 0
	g.tick = 0
	g.paused = false
	g.won = false
	g.loadStage(0, g.opts.Config.Paddle.Hearts)

	g.opts.Logger.Debug("session reset", "seed", runtime.Seed, "screen", [2]int{runtime.ScreenW, runtime.ScreenH},
		"tick_rate", runtime.TickRate)
}

// loadStage builds the world for stage idx, carrying hearts over.
func (g *Game) loadStage(idx, hearts int) {
	stage := g.opts.Stages[idx]
	field := PlayField(g.runtime.ScreenW, g.runtime.ScreenH, g.opts.Config.Layout.HUDRows)

	w := NewWorld(g.opts.Config, stage, field, g.rng)
	w.SetAudio(g.opts.Audio)
	w.SetLogger(g.opts.Logger)
	w.Paddle().Hearts = hearts

	g.world = w
	g.stageIdx = idx
	if dropped := stage.Destructible() - w.Remaining(); dropped > 0 {
		g.opts.Logger.Warn("stage does not fit the screen", "stage", stage.ID, "dropped", dropped,
			"screen", [2]int{g.runtime.ScreenW, g.runtime.ScreenH})
	}
	g.opts.Logger.Debug("stage loaded", "stage", stage.ID, "blocks", w.Remaining(), "hearts", hearts)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	over := g.world.GameOver() || g.won
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused || over {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	events := g.world.Update(g.dt, in)

	if g.world.Cleared() {
		next := g.stageIdx + 1
		if next < len(g.opts.Stages) {
			g.loadStage(next, g.world.Paddle().Hearts)
		} else {
			g.won = true
			g.opts.Logger.Info("all stages cleared", "ticks", g.tick)
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Hearts:   g.world.Paddle().Hearts,
		Stage:    g.stageIdx,
		Blocks:   g.world.Remaining(),
		GameOver: g.world.GameOver(),
		Won:      g.won,
		Paused:   g.paused,
	}
}

// World exposes the current stage's world.
func (g *Game) World() *World {
	return g.world
}

// Tick returns the number of simulated ticks since Reset.
func (g *Game) Tick() uint64 {
	return g.tick
}

// StageCount returns the number of stages in the session.
func (g *Game) StageCount() int {
	return len(g.opts.Stages)
}
