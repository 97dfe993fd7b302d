package tui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Game is the simulation contract the frame driver runs.
type Game interface {
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Hash() uint64
}

// CRT alpha is re-rolled each frame within [crtAlphaMin, crtAlphaMin+crtAlphaSpan).
const (
	crtAlphaMin  = 0.60
	crtAlphaSpan = 0.15
)

// Options configures a play session.
type Options struct {
	HoldTicks     int    // Ticks a direction key stays held after a press
	CRT           bool   // Scanline overlay
	ShowHelp      bool   // Key help on the last terminal row
	ScreenshotDir string // Target of ctrl+s; screenshots disabled when empty
	Logger        *log.Logger

	// NewRecorder starts a recording for every reset of the session.
	// Recording is disabled when nil.
	NewRecorder func(core.RuntimeConfig) *storage.Recorder
}

// Model is the Bubble Tea model for a breakout session.
type Model struct {
	game     Game
	screen   *core.Screen
	config   core.RuntimeConfig
	opts     Options
	keys     KeyMap
	help     help.Model
	input    InputState
	state    core.GameState
	crt      *rand.Rand
	recorder *storage.Recorder
	replay   *storage.Replay
	quitting bool
}

// NewModel creates a model for the game. cfg carries the full terminal
// size; the help row is taken from it.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg.ScreenH -= helpRows(opts)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   h,
		input:  NewInputState(opts.HoldTicks),
		//#nosec G404 G115 -- cosmetic flicker only
		crt: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	if opts.NewRecorder != nil {
		m.recorder = opts.NewRecorder(cfg)
	}
	return m
}

func helpRows(opts Options) int {
	if opts.ShowHelp {
		return 1
	}
	return 0
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Info("session started", "seed", m.config.Seed,
		"screen", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH), "tick_rate", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		if m.recorder != nil {
			r := m.recorder.Finish(m.game.Hash(), m.game.State())
			m.replay = &r
		}
		m.opts.Logger.Info("session ended", "stage", m.state.Stage, "hearts", m.state.Hearts)
		return m, tea.Quit
	}

	m.input.Press(action)
	return m, nil
}

// handleResize processes window resize events. A new size restarts the
// session because the playfield geometry depends on it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.help.Width = msg.Width

	height := msg.Height - helpRows(m.opts)
	if msg.Width == m.config.ScreenW && height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = height
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	m.game.Reset(m.config)
	m.state = m.game.State()
	if m.opts.NewRecorder != nil {
		m.recorder = m.opts.NewRecorder(m.config)
	}
	m.opts.Logger.Info("session restarted on resize", "screen", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH))

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.input.Frame()
	if m.recorder != nil {
		m.recorder.Record(in)
	}

	result := m.game.Step(in)
	prev := m.state
	m.state = result.State
	if m.state.Over() && !prev.Over() {
		m.opts.Logger.Info("session over", "won", m.state.Won, "stage", m.state.Stage)
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}

	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("breakout_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.opts.CRT {
		m.screen.DrawOverlay(crtAlphaMin + m.crt.Float64()*crtAlphaSpan)
	}

	out := RenderScreen(m.screen)
	if m.opts.ShowHelp {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Replay returns the finished recording, or nil when the session was not
// recorded or has not ended.
func (m Model) Replay() *storage.Replay {
	return m.replay
}

// Run starts the Bubble Tea program and returns the final model.
func Run(model Model) (Model, error) {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(Model); ok {
		return m, nil
	}
	return model, nil
}
