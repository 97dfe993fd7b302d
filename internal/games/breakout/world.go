package breakout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Rand is the injected random source. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Effect volumes.
const (
	volumeLaser    = 0.1
	volumePowerUp  = 0.1
	volumeLaserHit = 0.02
	volumeBlockHit = 0.05
	volumeLifeLost = 0.2
)

// PlayField returns the area the ball moves in for a screen size: inside
// the side walls, below the HUD and top wall, open at the bottom.
func PlayField(screenW, screenH, hudRows int) core.Box {
	top := float64(hudRows + 1)
	return core.Box{
		X: 1,
		Y: top,
		W: float64(screenW - 2),
		H: float64(screenH) - top,
	}
}

// World owns every entity of one stage and runs the update pass.
// It is single-threaded; all mutation happens inside Update.
type World struct {
	cfg   config.BreakoutConfig
	stage Stage
	field core.Box
	rng   Rand

	arena  *Arena
	paddle *Paddle
	ball   *Ball

	upgradeTypes []UpgradeType
	now          time.Duration
	events       []core.Event
	gameOver     bool
	cleared      bool

	sound audio.Player
	log   *log.Logger
}

// NewWorld lays out stage inside field and docks the ball on a fresh paddle.
func NewWorld(cfg config.BreakoutConfig, stage Stage, field core.Box, rng Rand) *World {
	w := &World{
		cfg:          cfg,
		stage:        stage,
		field:        field,
		rng:          rng,
		arena:        NewArena(),
		upgradeTypes: upgradeTypes(cfg.Upgrades.Types),
		sound:        audio.Nop{},
		log:          log.New(io.Discard),
	}

	cooldown := time.Duration(cfg.Projectiles.CooldownMS) * time.Millisecond
	w.paddle = NewPaddle(cfg.Paddle, cooldown, field)
	w.arena.Add(w.paddle)
	w.ball = NewBall(cfg.Ball, w.paddle)
	w.arena.Add(w.ball)

	for _, b := range stage.Layout(field, cfg.Blocks) {
		w.arena.Add(b)
	}
	return w
}

// SetAudio sets the sound collaborator.
func (w *World) SetAudio(p audio.Player) {
	if p == nil {
		p = audio.Nop{}
	}
	w.sound = p
}

// SetLogger sets the logger.
func (w *World) SetLogger(l *log.Logger) {
	if l != nil {
		w.log = l
	}
}

// Accessors used by rendering and tests.
func (w *World) Arena() *Arena      { return w.arena }
func (w *World) Paddle() *Paddle    { return w.paddle }
func (w *World) Ball() *Ball        { return w.ball }
func (w *World) Field() core.Box    { return w.field }
func (w *World) Stage() Stage       { return w.stage }
func (w *World) Now() time.Duration { return w.now }
func (w *World) GameOver() bool     { return w.gameOver }
func (w *World) Cleared() bool      { return w.cleared }

// Remaining counts destructible blocks still standing.
func (w *World) Remaining() int {
	n := 0
	for _, b := range w.arena.Blocks() {
		if b.Destructible {
			n++
		}
	}
	return n
}

// Update runs exactly one update pass and returns what happened.
func (w *World) Update(dt time.Duration, in core.InputFrame) []core.Event {
	w.events = nil
	if w.gameOver || w.cleared {
		return nil
	}

	w.now += dt
	sec := dt.Seconds()

	if in.Has(core.ActionFire) {
		if w.ball.Launch(w.rng) {
			w.log.Debug("ball launched", "vx", w.ball.Vel.X, "vy", w.ball.Vel.Y)
		}
		w.fire()
	}

	w.paddle.Update(sec, in)

	rep := w.ball.Update(sec, ballEnv{
		field:  w.field,
		paddle: w.paddle,
		blocks: w.arena.Blocks(),
		hit:    w.ballHit,
		alive:  func(b *Block) bool { return w.arena.Has(b.ID()) },
	})
	if rep.lost {
		w.lifeLost()
	}

	for _, u := range w.arena.Upgrades() {
		u.Update(sec)
		if u.Gone(w.field) {
			w.arena.Remove(u.ID())
		}
	}
	for _, p := range w.arena.Projectiles() {
		p.Update(sec)
		if p.Gone(w.field) {
			w.arena.Remove(p.ID())
		}
	}

	w.collectUpgrades()
	w.projectileHits()

	if !w.gameOver && w.Remaining() == 0 {
		w.cleared = true
		w.emit(core.EventStageCleared, w.field.Center(), w.stage.ID)
		w.log.Debug("stage cleared", "stage", w.stage.ID, "t", w.now)
	}
	return w.events
}

func (w *World) emit(kind core.EventKind, pos core.Vec2, info string) {
	w.events = append(w.events, core.Event{Kind: kind, Pos: pos, Info: info})
}

// fire shoots one bolt per laser emitter when the cooldown allows.
// Without lasers the request is ignored and the cooldown is not started.
func (w *World) fire() {
	pts := w.paddle.LaserPoints()
	if len(pts) == 0 || !w.paddle.CanFire(w.now) {
		return
	}
	for _, pt := range pts {
		pos := core.V(pt.X, pt.Y-projectileHeight/2)
		w.arena.Add(NewProjectile(pos, w.cfg.Projectiles.Speed))
	}
	w.paddle.MarkFired(w.now)
	w.sound.Play(audio.SoundLaser, volumeLaser)
	w.emit(core.EventShot, w.paddle.Top(), "")
}

// ballHit applies one point of ball damage to a block.
func (w *World) ballHit(b *Block) {
	if !b.Destructible {
		return
	}
	w.sound.Play(audio.SoundBlockHit, volumeBlockHit)
	w.damageBlock(b, 1)
}

func (w *World) damageBlock(b *Block, amount int) {
	if !w.arena.Has(b.ID()) {
		return
	}
	destroyed := b.GetDamage(amount)
	if b.Destructible {
		w.emit(core.EventBlockHit, b.Bounds().Center(), b.Type.String())
	}
	if destroyed {
		w.onBlockDestroyed(b)
	}
}

// onBlockDestroyed removes a depleted block and rolls for an upgrade drop
// at its centre.
func (w *World) onBlockDestroyed(b *Block) {
	center := b.Bounds().Center()
	w.arena.Remove(b.ID())
	w.emit(core.EventBlockDestroyed, center, b.Type.String())

	if w.rng.IntN(100) >= w.cfg.Upgrades.Chance || len(w.upgradeTypes) == 0 {
		return
	}
	t := w.upgradeTypes[w.rng.IntN(len(w.upgradeTypes))]
	w.arena.Add(NewUpgrade(t, center, w.cfg.Upgrades.FallSpeed))
	w.emit(core.EventUpgradeSpawned, center, t.String())
}

// collectUpgrades applies every upgrade touching the paddle. Collected
// upgrades leave the arena at once, so each applies exactly once.
func (w *World) collectUpgrades() {
	pb := w.paddle.Bounds()
	for _, u := range w.arena.Upgrades() {
		if !u.Bounds().Intersects(pb) {
			continue
		}
		if !w.arena.Remove(u.ID()) {
			continue
		}
		w.paddle.ApplyUpgrade(u.Type)
		w.sound.Play(audio.SoundPowerUp, volumePowerUp)
		w.emit(core.EventUpgradeCollected, u.Pos, u.Type.String())
		w.log.Debug("upgrade collected", "type", u.Type, "size", w.paddle.SizeMult,
			"speed", w.paddle.SpeedMult, "lasers", w.paddle.Lasers, "hearts", w.paddle.Hearts)
	}
}

// projectileHits strikes the first block each bolt overlaps. Contact always
// consumes the bolt; steel takes no damage.
func (w *World) projectileHits() {
	for _, p := range w.arena.Projectiles() {
		if !w.arena.Has(p.ID()) {
			continue
		}
		pb := p.Bounds()
		for _, b := range w.arena.Blocks() {
			if !pb.Intersects(b.Bounds()) {
				continue
			}
			w.arena.Remove(p.ID())
			w.sound.Play(audio.SoundLaserHit, volumeLaserHit)
			w.damageBlock(b, 1)
			break
		}
	}
}

func (w *World) lifeLost() {
	w.sound.Play(audio.SoundLifeLost, volumeLifeLost)
	w.emit(core.EventLifeLost, w.ball.Pos, "")
	w.log.Debug("life lost", "hearts", w.paddle.Hearts, "t", w.now)

	if w.paddle.Hearts == 0 {
		w.gameOver = true
		w.emit(core.EventGameOver, w.ball.Pos, "")
		w.log.Info("game over", "stage", w.stage.ID, "t", w.now)
	}
}
