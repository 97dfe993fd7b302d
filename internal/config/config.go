// Package config provides YAML-based game configuration loading and
// difficulty presets for breakout.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all tunables for a breakout session.
// Speeds are in cells per second, durations in milliseconds.
type BreakoutConfig struct {
	Ball        BallConfig       `yaml:"ball"`
	Paddle      PaddleConfig     `yaml:"paddle"`
	Blocks      BlocksConfig     `yaml:"blocks"`
	Upgrades    UpgradesConfig   `yaml:"upgrades"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Layout      LayoutConfig     `yaml:"layout"`
	Input       InputConfig      `yaml:"input"`
}

// BallConfig defines ball physics.
type BallConfig struct {
	Speed       float64 `yaml:"speed"`
	Size        float64 `yaml:"size"`
	MinAngleDeg float64 `yaml:"min_angle_deg"` // Minimum angle away from either axis after a bounce
	UpBias      float64 `yaml:"up_bias"`       // Vertical component of a paddle bounce before normalising
	Deflect     float64 `yaml:"deflect"`       // Horizontal gain applied to the paddle contact offset
}

// PaddleConfig defines the player paddle and its upgrade bounds.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	BottomMargin float64 `yaml:"bottom_margin"`
	SizeMin      float64 `yaml:"size_min"`
	SizeMax      float64 `yaml:"size_max"`
	SizeStep     float64 `yaml:"size_step"`
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	SpeedStep    float64 `yaml:"speed_step"`
	Hearts       int     `yaml:"hearts"`
	MaxHearts    int     `yaml:"max_hearts"`
	MaxLasers    int     `yaml:"max_lasers"`
}

// BlocksConfig defines the stage grid geometry.
type BlocksConfig struct {
	Height    float64 `yaml:"height"`
	GapX      float64 `yaml:"gap_x"`
	GapY      float64 `yaml:"gap_y"`
	TopOffset float64 `yaml:"top_offset"` // Rows between the top wall and the first block row
	Margin    float64 `yaml:"margin"`     // Horizontal inset from the side walls
}

// UpgradesConfig defines upgrade drops.
type UpgradesConfig struct {
	Chance    int      `yaml:"chance"` // Percent chance that a destroyed block drops an upgrade
	FallSpeed float64  `yaml:"fall_speed"`
	Types     []string `yaml:"types"`
}

// ProjectileConfig defines laser bolts.
type ProjectileConfig struct {
	Speed      float64 `yaml:"speed"`
	CooldownMS int     `yaml:"cooldown_ms"`
}

// LayoutConfig defines screen areas outside the playfield.
type LayoutConfig struct {
	HUDRows int `yaml:"hud_rows"`
}

// InputConfig defines input smoothing.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // Frames a direction key stays held after a press
}

// Upgrade type names accepted in upgrades.types.
const (
	UpgradeSizeUp    = "size_up"
	UpgradeSizeDown  = "size_down"
	UpgradeSpeedUp   = "speed_up"
	UpgradeSpeedDown = "speed_down"
	UpgradeLaser     = "laser"
	UpgradeHeart     = "heart"
)

// UpgradeNames lists every known upgrade type in canonical order.
var UpgradeNames = []string{
	UpgradeSizeUp, UpgradeSizeDown,
	UpgradeSpeedUp, UpgradeSpeedDown,
	UpgradeLaser, UpgradeHeart,
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case c.Ball.Speed <= 0:
		return fail("ball.speed must be positive, got %v", c.Ball.Speed)
	case c.Ball.Size <= 0:
		return fail("ball.size must be positive, got %v", c.Ball.Size)
	case c.Ball.MinAngleDeg < 0 || c.Ball.MinAngleDeg >= 45:
		return fail("ball.min_angle_deg must be in [0, 45), got %v", c.Ball.MinAngleDeg)
	case c.Ball.UpBias <= 0:
		return fail("ball.up_bias must be positive, got %v", c.Ball.UpBias)
	case c.Ball.Deflect < 0:
		return fail("ball.deflect must not be negative, got %v", c.Ball.Deflect)
	}

	p := c.Paddle
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fail("paddle size must be positive, got %vx%v", p.Width, p.Height)
	case p.Speed <= 0:
		return fail("paddle.speed must be positive, got %v", p.Speed)
	case p.SizeMin <= 0 || p.SizeMin > p.SizeMax:
		return fail("paddle size bounds inverted or non-positive: [%v, %v]", p.SizeMin, p.SizeMax)
	case p.SpeedMin <= 0 || p.SpeedMin > p.SpeedMax:
		return fail("paddle speed bounds inverted or non-positive: [%v, %v]", p.SpeedMin, p.SpeedMax)
	case p.SizeStep < 0 || p.SpeedStep < 0:
		return fail("paddle steps must not be negative")
	case p.Hearts <= 0 || p.Hearts > p.MaxHearts:
		return fail("paddle.hearts must be in [1, max_hearts], got %d (max %d)", p.Hearts, p.MaxHearts)
	case p.MaxLasers < 0:
		return fail("paddle.max_lasers must not be negative, got %d", p.MaxLasers)
	}

	b := c.Blocks
	switch {
	case b.Height <= 0:
		return fail("blocks.height must be positive, got %v", b.Height)
	case b.GapX < 0 || b.GapY < 0 || b.TopOffset < 0 || b.Margin < 0:
		return fail("blocks gaps, offset and margin must not be negative")
	}

	u := c.Upgrades
	if u.Chance < 0 || u.Chance > 100 {
		return fail("upgrades.chance must be in [0, 100], got %d", u.Chance)
	}
	if u.FallSpeed <= 0 {
		return fail("upgrades.fall_speed must be positive, got %v", u.FallSpeed)
	}
	for _, name := range u.Types {
		if !knownUpgrade(name) {
			return fail("unknown upgrade type %q", name)
		}
	}
	if u.Chance > 0 && len(u.Types) == 0 {
		return fail("upgrades.types is empty but chance is %d", u.Chance)
	}

	if c.Projectiles.Speed <= 0 {
		return fail("projectiles.speed must be positive, got %v", c.Projectiles.Speed)
	}
	if c.Projectiles.CooldownMS < 0 {
		return fail("projectiles.cooldown_ms must not be negative, got %d", c.Projectiles.CooldownMS)
	}
	if c.Layout.HUDRows < 0 {
		return fail("layout.hud_rows must not be negative, got %d", c.Layout.HUDRows)
	}
	if c.Input.HoldTicks < 1 {
		return fail("input.hold_ticks must be at least 1, got %d", c.Input.HoldTicks)
	}
	return nil
}

func knownUpgrade(name string) bool {
	for _, n := range UpgradeNames {
		if n == name {
			return true
		}
	}
	return false
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
