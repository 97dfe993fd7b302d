package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// KeyMap defines the key bindings of a play session.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "launch/fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// InputState turns discrete key presses into per-tick input frames.
// Terminals report no key-up, so a direction press is held for a fixed
// number of ticks and refreshed by key repeat. Other actions last one tick.
type InputState struct {
	holdTicks int
	left      int
	right     int
	pending   core.InputFrame
}

// NewInputState creates an input state holding directions for holdTicks.
func NewInputState(holdTicks int) InputState {
	return InputState{
		holdTicks: max(holdTicks, 1),
		pending:   core.NewInputFrame(),
	}
}

// Press registers an action.
func (s *InputState) Press(a core.Action) {
	switch a {
	case core.ActionNone, core.ActionQuit:
		return
	case core.ActionLeft:
		s.left, s.right = s.holdTicks, 0
	case core.ActionRight:
		s.left, s.right = 0, s.holdTicks
	default:
		s.pending.Set(a)
	}
}

// Frame returns the input for the next tick and advances the holds.
func (s *InputState) Frame() core.InputFrame {
	frame := s.pending.Clone()
	if s.left > 0 {
		frame.Set(core.ActionLeft)
		s.left--
	}
	if s.right > 0 {
		frame.Set(core.ActionRight)
		s.right--
	}
	s.pending.Clear()
	return frame
}
