package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left (held)
	ActionRight          // D, Right arrow - move paddle right (held)
	ActionFire           // Space, Up - launch a docked ball and shoot lasers
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R key - restart the session
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the polled input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Bits packs the frame into a bitmask, one bit per action.
// Used by the replay journal to store inputs compactly.
func (f InputFrame) Bits() uint8 {
	var b uint8
	for a, on := range f.Actions {
		if on && a > ActionNone && a <= ActionQuit {
			b |= 1 << (a - 1)
		}
	}
	return b
}

// InputFromBits is the inverse of Bits.
func InputFromBits(b uint8) InputFrame {
	f := NewInputFrame()
	for a := ActionLeft; a <= ActionQuit; a++ {
		if b&(1<<(a-1)) != 0 {
			f.Set(a)
		}
	}
	return f
}
