// Package audio plays fire-and-forget sound effects for game events.
// Nothing here feeds back into the simulation.
package audio

//go:generate go tool mockgen -source=audio.go -destination=mock_audio/player.go -package=mock_audio

// Sound identifies a sound effect.
type Sound int

const (
	SoundLaser Sound = iota
	SoundPowerUp
	SoundLaserHit
	SoundBlockHit
	SoundLifeLost
)

func (s Sound) String() string {
	switch s {
	case SoundLaser:
		return "laser"
	case SoundPowerUp:
		return "powerup"
	case SoundLaserHit:
		return "laser_hit"
	case SoundBlockHit:
		return "block_hit"
	case SoundLifeLost:
		return "life_lost"
	default:
		return "unknown"
	}
}

// Player plays a sound at a linear volume in [0, 1].
type Player interface {
	Play(s Sound, volume float64)
}

// Nop discards every sound.
type Nop struct{}

func (Nop) Play(Sound, float64) {}
