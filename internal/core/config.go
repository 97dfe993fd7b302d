package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Hearts   int  // Remaining lives
	Stage    int  // Zero-based index of the current stage
	Blocks   int  // Destructible blocks left on the current stage
	GameOver bool // Hearts ran out
	Won      bool // Last stage cleared
	Paused   bool // Whether the game is paused
}

// Over reports whether the session has ended either way.
func (s GameState) Over() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventShot EventKind = iota
	EventBlockHit
	EventBlockDestroyed
	EventUpgradeSpawned
	EventUpgradeCollected
	EventLifeLost
	EventStageCleared
	EventGameOver
)

var eventNames = [...]string{
	EventShot:             "shot",
	EventBlockHit:         "block_hit",
	EventBlockDestroyed:   "block_destroyed",
	EventUpgradeSpawned:   "upgrade_spawned",
	EventUpgradeCollected: "upgrade_collected",
	EventLifeLost:         "life_lost",
	EventStageCleared:     "stage_cleared",
	EventGameOver:         "game_over",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is a fire-and-forget notification for collaborators such as audio.
type Event struct {
	Kind EventKind
	Pos  Vec2   // World position where it happened, if any
	Info string // Optional detail (e.g. upgrade type)
}
