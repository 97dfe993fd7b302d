package config

import (
	_ "embed"
	"slices"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hard-coded breakout configuration.
// It is the last fallback when no YAML source can be read.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Ball: BallConfig{
			Speed:       24, // cells per second
			Size:        1,
			MinAngleDeg: 15,
			UpBias:      1,
			Deflect:     1.5,
		},
		Paddle: PaddleConfig{
			Width:        10,
			Height:       1,
			Speed:        60,
			BottomMargin: 2,
			SizeMin:      0.5,
			SizeMax:      2,
			SizeStep:     0.25,
			SpeedMin:     0.5,
			SpeedMax:     2,
			SpeedStep:    0.25,
			Hearts:       3,
			MaxHearts:    5,
			MaxLasers:    3,
		},
		Blocks: BlocksConfig{
			Height:    1,
			GapX:      1,
			GapY:      0,
			TopOffset: 2,
			Margin:    1,
		},
		Upgrades: UpgradesConfig{
			Chance:    30,
			FallSpeed: 8,
			Types:     slices.Clone(UpgradeNames),
		},
		Projectiles: ProjectileConfig{
			Speed:      40,
			CooldownMS: 500,
		},
		Layout: LayoutConfig{
			HUDRows: 1,
		},
		Input: InputConfig{
			HoldTicks: 6,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
