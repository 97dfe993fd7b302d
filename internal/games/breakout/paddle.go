package breakout

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Paddle is the player. It moves horizontally only and carries every
// upgrade-driven stat: size, speed, hearts and lasers.
type Paddle struct {
	entityBase
	X float64 // Centre
	Y float64 // Top edge

	SizeMult  float64
	SpeedMult float64
	Hearts    int
	Lasers    int

	cfg      config.PaddleConfig
	cooldown time.Duration
	field    core.Box

	lastShot time.Duration
	hasShot  bool
}

// NewPaddle creates a paddle centred at the bottom of field.
func NewPaddle(cfg config.PaddleConfig, cooldown time.Duration, field core.Box) *Paddle {
	p := &Paddle{
		X:         field.Center().X,
		Y:         field.Bottom() - cfg.BottomMargin - cfg.Height,
		SizeMult:  1,
		SpeedMult: 1,
		Hearts:    cfg.Hearts,
		cfg:       cfg,
		cooldown:  cooldown,
		field:     field,
	}
	p.clamp()
	return p
}

func (p *Paddle) Kind() Kind { return KindPaddle }

// Width returns the current width after size upgrades.
func (p *Paddle) Width() float64 {
	return p.cfg.Width * p.SizeMult
}

func (p *Paddle) Bounds() core.Box {
	w := p.Width()
	return core.Box{X: p.X - w/2, Y: p.Y, W: w, H: p.cfg.Height}
}

// Update moves the paddle according to held direction actions.
func (p *Paddle) Update(dt float64, in core.InputFrame) {
	dir := 0.0
	if in.Has(core.ActionLeft) {
		dir--
	}
	if in.Has(core.ActionRight) {
		dir++
	}
	p.X += dir * p.cfg.Speed * p.SpeedMult * dt
	p.clamp()
}

// clamp keeps the paddle fully inside the playfield.
func (p *Paddle) clamp() {
	half := p.Width() / 2
	lo, hi := p.field.Left()+half, p.field.Right()-half
	if lo > hi {
		p.X = p.field.Center().X
		return
	}
	p.X = core.ClampF(p.X, lo, hi)
}

// ApplyUpgrade applies an upgrade effect. Every stat is re-clamped to its
// configured bounds, so no sequence of upgrades can leave them.
func (p *Paddle) ApplyUpgrade(t UpgradeType) {
	switch t {
	case UpgradeSizeUp:
		p.SizeMult += p.cfg.SizeStep
	case UpgradeSizeDown:
		p.SizeMult -= p.cfg.SizeStep
	case UpgradeSpeedUp:
		p.SpeedMult += p.cfg.SpeedStep
	case UpgradeSpeedDown:
		p.SpeedMult -= p.cfg.SpeedStep
	case UpgradeLaser:
		p.Lasers++
	case UpgradeHeart:
		p.Hearts++
	}

	p.SizeMult = core.ClampF(p.SizeMult, p.cfg.SizeMin, p.cfg.SizeMax)
	p.SpeedMult = core.ClampF(p.SpeedMult, p.cfg.SpeedMin, p.cfg.SpeedMax)
	p.Lasers = core.Clamp(p.Lasers, 0, p.cfg.MaxLasers)
	p.Hearts = core.Clamp(p.Hearts, 0, p.cfg.MaxHearts)
	p.clamp()
}

// LoseHeart removes one heart. It reports whether the paddle is out of hearts.
func (p *Paddle) LoseHeart() bool {
	if p.Hearts > 0 {
		p.Hearts--
	}
	return p.Hearts == 0
}

// LaserPoints returns the emission points for the current laser count,
// evenly spaced along the paddle top.
func (p *Paddle) LaserPoints() []core.Vec2 {
	if p.Lasers <= 0 {
		return nil
	}
	b := p.Bounds()
	pts := make([]core.Vec2, p.Lasers)
	for i := range pts {
		x := b.Left() + b.W*float64(i+1)/float64(p.Lasers+1)
		pts[i] = core.V(x, b.Top())
	}
	return pts
}

// CanFire reports whether the fire cooldown has elapsed at now.
func (p *Paddle) CanFire(now time.Duration) bool {
	return !p.hasShot || now-p.lastShot >= p.cooldown
}

// MarkFired starts the cooldown.
func (p *Paddle) MarkFired(now time.Duration) {
	p.lastShot = now
	p.hasShot = true
}

// Top returns the docking point for the ball.
func (p *Paddle) Top() core.Vec2 {
	return core.V(p.X, p.Y)
}
