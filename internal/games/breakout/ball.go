package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BallChar is the glyph of the ball.
const BallChar = '●'

// BallState is the ball's two-state machine.
type BallState int

const (
	BallDocked   BallState = iota // Pinned to the paddle, no integration
	BallLaunched                  // Free flight
)

func (s BallState) String() string {
	if s == BallLaunched {
		return "launched"
	}
	return "docked"
}

// Ball is the main physics body. Its speed magnitude never changes while
// launched; bounces only rotate the velocity.
type Ball struct {
	entityBase
	State BallState
	Pos   core.Vec2 // Centre
	Vel   core.Vec2

	cfg     config.BallConfig
	minSin  float64 // sin(min_angle_deg)
	prevPos core.Vec2
}

// NewBall creates a ball docked on p.
func NewBall(cfg config.BallConfig, p *Paddle) *Ball {
	b := &Ball{
		cfg:    cfg,
		minSin: math.Sin(cfg.MinAngleDeg * math.Pi / 180),
	}
	b.Dock(p)
	return b
}

func (b *Ball) Kind() Kind { return KindBall }

func (b *Ball) Bounds() core.Box {
	return core.BoxAround(b.Pos, b.cfg.Size, b.cfg.Size)
}

// Speed returns the configured constant speed.
func (b *Ball) Speed() float64 {
	return b.cfg.Speed
}

// Dock pins the ball to the paddle's top centre and stops it.
func (b *Ball) Dock(p *Paddle) {
	b.State = BallDocked
	b.Vel = core.Vec2{}
	b.follow(p)
}

func (b *Ball) follow(p *Paddle) {
	top := p.Top()
	b.Pos = core.V(top.X, top.Y-b.cfg.Size/2)
	b.prevPos = b.Pos
}

// Launch starts free flight diagonally upward. The horizontal sign comes
// from rng. Launching a ball already in flight does nothing.
func (b *Ball) Launch(rng Rand) bool {
	if b.State == BallLaunched {
		return false
	}
	dx := 1.0
	if rng.IntN(2) == 0 {
		dx = -1
	}
	b.State = BallLaunched
	b.Vel = core.V(dx, -1).Normalize().Scale(b.cfg.Speed)
	return true
}

// ballEnv is what the ball collides with during one update.
type ballEnv struct {
	field  core.Box
	paddle *Paddle
	blocks []*Block
	hit    func(*Block)      // Applies one point of damage
	alive  func(*Block) bool // Reports blocks destroyed earlier in the update
}

// maxBallSubsteps bounds the collision passes of one update.
const maxBallSubsteps = 64

// ballReport summarises one update.
type ballReport struct {
	paddleHit bool
	blockHits int
	lost      bool
}

// Update advances the ball by dt seconds. The move is split into passes
// no longer than the ball's size so it cannot skip over the paddle or a
// block. Each pass resolves collisions in order: walls, paddle, blocks,
// bottom exit.
func (b *Ball) Update(dt float64, env ballEnv) ballReport {
	var rep ballReport
	if b.State == BallDocked {
		b.follow(env.paddle)
		return rep
	}

	n := b.substeps(dt)
	h := dt / float64(n)
	for range n {
		b.step(h, env, &rep)
		if rep.lost {
			break
		}
	}
	return rep
}

// substeps returns how many passes keep each move within one ball size.
func (b *Ball) substeps(dt float64) int {
	if b.cfg.Size <= 0 {
		return 1
	}
	n := int(math.Ceil(b.Vel.Len() * dt / b.cfg.Size))
	return min(max(n, 1), maxBallSubsteps)
}

func (b *Ball) step(dt float64, env ballEnv, rep *ballReport) {
	b.prevPos = b.Pos
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	bounced := b.collideWalls(env.field)
	if b.collidePaddle(env.paddle) {
		rep.paddleHit = true
		bounced = true
	}
	if n := b.collideBlocks(env); n > 0 {
		rep.blockHits += n
		bounced = true
	}
	if bounced {
		b.enforceAngle()
	}

	if b.Pos.Y > env.field.Bottom() {
		b.Dock(env.paddle)
		env.paddle.LoseHeart()
		rep.lost = true
	}
}

// collideWalls reflects off the side and top walls. The reflected component
// is forced away from the wall so a ball clamped onto it cannot stick.
func (b *Ball) collideWalls(field core.Box) bool {
	half := b.cfg.Size / 2
	hit := false

	if b.Pos.X-half < field.Left() {
		b.Pos.X = field.Left() + half
		b.Vel.X = math.Abs(b.Vel.X)
		hit = true
	} else if b.Pos.X+half > field.Right() {
		b.Pos.X = field.Right() - half
		b.Vel.X = -math.Abs(b.Vel.X)
		hit = true
	}
	if b.Pos.Y-half < field.Top() {
		b.Pos.Y = field.Top() + half
		b.Vel.Y = math.Abs(b.Vel.Y)
		hit = true
	}
	return hit
}

// collidePaddle bounces off the paddle. Only a descending ball coming from
// above the paddle's top edge counts, so grazing the side does not bounce.
// The outgoing angle follows the contact offset from the paddle centre.
func (b *Ball) collidePaddle(p *Paddle) bool {
	if b.Vel.Y <= 0 {
		return false
	}
	pb := p.Bounds()
	box := b.Bounds()
	if !box.Intersects(pb) {
		return false
	}
	prevBottom := b.prevPos.Y + b.cfg.Size/2
	if b.Pos.Y >= pb.Top() && prevBottom > pb.Top() {
		return false
	}

	offset := core.ClampF((b.Pos.X-pb.Center().X)/(pb.W/2), -1, 1)
	dir := core.V(offset*b.cfg.Deflect, -b.cfg.UpBias).Normalize()
	b.Vel = dir.Scale(b.cfg.Speed)
	b.Pos.Y = pb.Top() - b.cfg.Size/2
	return true
}

// collideBlocks damages every overlapping block and bounces once per axis.
// The axis is chosen per block from where the ball was before moving.
func (b *Ball) collideBlocks(env ballEnv) int {
	box := b.Bounds()
	prev := core.BoxAround(b.prevPos, b.cfg.Size, b.cfg.Size)
	flipX, flipY := false, false
	n := 0

	for _, blk := range env.blocks {
		if env.alive != nil && !env.alive(blk) {
			continue
		}
		bb := blk.Bounds()
		if !box.Intersects(bb) {
			continue
		}
		n++
		if env.hit != nil {
			env.hit(blk)
		}

		switch {
		case prev.Bottom() <= bb.Top() || prev.Top() >= bb.Bottom():
			flipY = true
		case prev.Right() <= bb.Left() || prev.Left() >= bb.Right():
			flipX = true
		default:
			c, bc := prev.Center(), bb.Center()
			dx := math.Abs(c.X-bc.X) / (bb.W/2 + prev.W/2)
			dy := math.Abs(c.Y-bc.Y) / (bb.H/2 + prev.H/2)
			if dy >= dx {
				flipY = true
			} else {
				flipX = true
			}
		}
	}

	if flipY {
		b.Vel.Y = -b.Vel.Y
		b.Pos.Y = b.prevPos.Y
	}
	if flipX {
		b.Vel.X = -b.Vel.X
		b.Pos.X = b.prevPos.X
	}
	return n
}

// enforceAngle keeps the direction at least min_angle_deg away from both
// axes and restores the constant speed.
func (b *Ball) enforceAngle() {
	dir := b.Vel.Normalize()
	if dir == (core.Vec2{}) {
		dir = core.V(0, -1)
	}
	s := b.minSin
	c := math.Sqrt(1 - s*s)

	if math.Abs(dir.Y) < s {
		dir = core.V(signOr(dir.X, 1)*c, signOr(dir.Y, -1)*s)
	} else if math.Abs(dir.X) < s {
		dir = core.V(signOr(dir.X, 1)*s, signOr(dir.Y, -1)*c)
	}
	b.Vel = dir.Normalize().Scale(b.cfg.Speed)
}

// signOr returns the sign of v, or fallback when v is zero.
func signOr(v, fallback float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return fallback
	}
}
