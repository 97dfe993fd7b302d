package breakout

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/audio/mock_audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

const frame = time.Second / 60

// seqRand replays scripted values, wrapping around.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func testConfig() config.BreakoutConfig {
	return config.DefaultBreakoutConfig()
}

// testField is the playfield of an 80x24 screen: x in [1, 79], y in [2, 24].
func testField() core.Box {
	return PlayField(80, 24, 1)
}

// testStage has one steel block on the far left (x 4..9) and one blue
// block on the far right (x 70..75), both on row y 4..5.
func testStage() Stage {
	return Stage{ID: "test", Name: "Test", Rows: []string{"X..........1"}}
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func blockOfType(t *testing.T, w *World, bt BlockType) *Block {
	t.Helper()
	for _, b := range w.Arena().Blocks() {
		if b.Type == bt {
			return b
		}
	}
	t.Fatalf("no %v block in arena", bt)
	return nil
}

func TestPlayField(t *testing.T) {
	f := PlayField(80, 24, 1)
	if f.Left() != 1 || f.Right() != 79 || f.Top() != 2 || f.Bottom() != 24 {
		t.Errorf("PlayField(80, 24, 1) = %+v", f)
	}
}

func TestNewWorldLayout(t *testing.T) {
	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{0}})

	if w.Arena().Count(KindBlock) != 2 {
		t.Fatalf("blocks = %d, expected 2", w.Arena().Count(KindBlock))
	}
	if w.Remaining() != 1 {
		t.Errorf("Remaining() = %d, steel must not count", w.Remaining())
	}
	if got := blockOfType(t, w, BlockBlue).Bounds(); got != (core.Box{X: 70, Y: 4, W: 5, H: 1}) {
		t.Errorf("blue block at %+v", got)
	}
	if w.Ball().State != BallDocked {
		t.Error("ball should start docked")
	}
}

func TestUpgradeSpawnSeeded(t *testing.T) {
	tests := []struct {
		name     string
		rolls    []int
		wantDrop bool
		wantType UpgradeType
		wantRNG  int
	}{
		{"drop laser", []int{5, 4}, true, UpgradeLaser, 2},
		{"drop heart", []int{29, 5}, true, UpgradeHeart, 2},
		{"roll at chance", []int{30}, false, 0, 1},
		{"roll above chance", []int{99}, false, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := &seqRand{vals: tc.rolls}
			w := NewWorld(testConfig(), testStage(), testField(), rng)
			blue := blockOfType(t, w, BlockBlue)
			center := blue.Bounds().Center()

			w.damageBlock(blue, 1)

			if w.Arena().Has(blue.ID()) {
				t.Fatal("destroyed block still in arena")
			}
			if countEvents(w.events, core.EventBlockDestroyed) != 1 {
				t.Errorf("events = %v", w.events)
			}
			if rng.i != tc.wantRNG {
				t.Errorf("rng draws = %d, expected %d", rng.i, tc.wantRNG)
			}

			ups := w.Arena().Upgrades()
			if !tc.wantDrop {
				if len(ups) != 0 {
					t.Errorf("unexpected upgrade %v", ups[0].Type)
				}
				return
			}
			if len(ups) != 1 {
				t.Fatalf("upgrades = %d, expected 1", len(ups))
			}
			if ups[0].Type != tc.wantType || ups[0].Pos != center {
				t.Errorf("upgrade %v at %v, expected %v at %v", ups[0].Type, ups[0].Pos, tc.wantType, center)
			}
		})
	}
}

func TestUpgradeDisabledTypes(t *testing.T) {
	cfg := testConfig()
	cfg.Upgrades.Types = []string{config.UpgradeHeart}
	rng := &seqRand{vals: []int{0, 3}}
	w := NewWorld(cfg, testStage(), testField(), rng)

	w.damageBlock(blockOfType(t, w, BlockBlue), 1)

	ups := w.Arena().Upgrades()
	if len(ups) != 1 || ups[0].Type != UpgradeHeart {
		t.Errorf("expected a heart upgrade, got %v", ups)
	}
}

func TestUpgradeCollectedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	player := mock_audio.NewMockPlayer(ctrl)
	player.EXPECT().Play(audio.SoundPowerUp, volumePowerUp).Times(1)

	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{0}})
	w.SetAudio(player)
	p := w.Paddle()

	// Speed 0 keeps it on the paddle if it were not removed
	w.Arena().Add(NewUpgrade(UpgradeLaser, core.V(p.X, p.Y+0.5), 0))

	collected := 0
	for range 10 {
		collected += countEvents(w.Update(frame, input()), core.EventUpgradeCollected)
	}

	if collected != 1 {
		t.Errorf("collected %d times, expected 1", collected)
	}
	if p.Lasers != 1 {
		t.Errorf("Lasers = %d, expected 1", p.Lasers)
	}
	if w.Arena().Count(KindUpgrade) != 0 {
		t.Error("collected upgrade still in arena")
	}
}

func TestUpgradeFallsOut(t *testing.T) {
	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{0}})
	// Far from the paddle horizontally
	w.Arena().Add(NewUpgrade(UpgradeHeart, core.V(70, 10), 8))

	for range 5 * 60 {
		w.Update(frame, input())
	}

	if w.Arena().Count(KindUpgrade) != 0 {
		t.Error("upgrade below the field was not removed")
	}
	if w.Paddle().Hearts != testConfig().Paddle.Hearts {
		t.Error("missed upgrade was applied")
	}
}

func TestFireCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	player := mock_audio.NewMockPlayer(ctrl)
	player.EXPECT().Play(audio.SoundLaser, volumeLaser).Times(2)

	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{1}})
	w.SetAudio(player)
	w.Paddle().ApplyUpgrade(UpgradeLaser)
	fire := input(core.ActionFire)

	if n := countEvents(w.Update(frame, fire), core.EventShot); n != 1 {
		t.Fatalf("first shot: %d events", n)
	}
	if w.Arena().Count(KindProjectile) != 1 {
		t.Fatalf("projectiles = %d, expected 1", w.Arena().Count(KindProjectile))
	}
	if w.Ball().State != BallLaunched {
		t.Error("fire did not launch the ball")
	}

	if n := countEvents(w.Update(400*time.Millisecond, fire), core.EventShot); n != 0 {
		t.Errorf("shot %d times inside the cooldown", n)
	}
	if n := countEvents(w.Update(100*time.Millisecond, fire), core.EventShot); n != 1 {
		t.Errorf("expected a shot once 500ms elapsed, got %d", n)
	}
}

func TestFireWithoutLasers(t *testing.T) {
	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{1}})
	fire := input(core.ActionFire)

	if n := countEvents(w.Update(frame, fire), core.EventShot); n != 0 {
		t.Fatalf("shot without lasers: %d", n)
	}
	if w.Arena().Count(KindProjectile) != 0 {
		t.Fatal("projectile spawned without lasers")
	}

	// The ignored request must not have started the cooldown
	w.Paddle().ApplyUpgrade(UpgradeLaser)
	if n := countEvents(w.Update(frame, fire), core.EventShot); n != 1 {
		t.Errorf("first laser shot blocked: %d", n)
	}
}

func TestFireSpawnsPerEmitter(t *testing.T) {
	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{1}})
	for range 3 {
		w.Paddle().ApplyUpgrade(UpgradeLaser)
	}
	w.Update(frame, input(core.ActionFire))

	if n := w.Arena().Count(KindProjectile); n != 3 {
		t.Errorf("projectiles = %d, expected 3", n)
	}
}

func TestProjectileLeavesTop(t *testing.T) {
	w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{0}})
	field := w.Field()
	w.Arena().Add(NewProjectile(core.V(40, field.Top()-0.4), 40))

	events := w.Update(frame, input())

	if w.Arena().Count(KindProjectile) != 0 {
		t.Error("projectile past the top was not removed")
	}
	if countEvents(events, core.EventBlockHit) != 0 {
		t.Error("projectile outside the field hit a block")
	}
}

func TestProjectileHits(t *testing.T) {
	t.Run("steel absorbs", func(t *testing.T) {
		w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{99}})
		steel := blockOfType(t, w, BlockSteel)
		hp := steel.HP
		w.Arena().Add(NewProjectile(core.V(6.5, 6), 40))

		events := w.Update(frame, input())

		if w.Arena().Count(KindProjectile) != 0 {
			t.Error("projectile not consumed by steel")
		}
		if steel.HP != hp || !w.Arena().Has(steel.ID()) {
			t.Error("steel block damaged")
		}
		if countEvents(events, core.EventBlockHit) != 0 {
			t.Error("steel hit reported as damage")
		}
	})

	t.Run("destroys blue", func(t *testing.T) {
		w := NewWorld(testConfig(), testStage(), testField(), &seqRand{vals: []int{99}})
		blue := blockOfType(t, w, BlockBlue)
		w.Arena().Add(NewProjectile(core.V(72.5, 6), 40))

		events := w.Update(frame, input())

		if w.Arena().Has(blue.ID()) {
			t.Error("blue block survived a hit")
		}
		if countEvents(events, core.EventBlockDestroyed) != 1 {
			t.Errorf("events = %v", events)
		}
		if countEvents(events, core.EventStageCleared) != 1 || !w.Cleared() {
			t.Error("stage not cleared after last block")
		}
		if w.Update(frame, input()) != nil {
			t.Error("cleared world kept updating")
		}
	})
}

func TestLifeLostAndGameOver(t *testing.T) {
	ctrl := gomock.NewController(t)
	player := mock_audio.NewMockPlayer(ctrl)
	player.EXPECT().Play(audio.SoundLifeLost, volumeLifeLost).Times(1)

	cfg := testConfig()
	w := NewWorld(cfg, testStage(), testField(), &seqRand{vals: []int{0}})
	w.SetAudio(player)
	w.Paddle().Hearts = 1

	b := w.Ball()
	b.State = BallLaunched
	b.Pos = core.V(40, w.Field().Bottom()-0.1)
	b.Vel = core.V(0.3, 1).Normalize().Scale(cfg.Ball.Speed)

	events := w.Update(100*time.Millisecond, input())

	if countEvents(events, core.EventLifeLost) != 1 || countEvents(events, core.EventGameOver) != 1 {
		t.Fatalf("events = %v", events)
	}
	if !w.GameOver() || w.Paddle().Hearts != 0 {
		t.Errorf("game over = %v, hearts = %d", w.GameOver(), w.Paddle().Hearts)
	}
	if w.Update(frame, input(core.ActionFire)) != nil {
		t.Error("world kept updating after game over")
	}
}

func TestWorldLowTickRateKeepsHearts(t *testing.T) {
	cfg := testConfig()
	w := NewWorld(cfg, testStage(), testField(), &seqRand{vals: []int{99}})

	b := w.Ball()
	p := w.Paddle()
	b.State = BallLaunched
	b.Pos = core.V(p.X, p.Y-3)
	b.Vel = core.V(0.3, 1).Normalize().Scale(cfg.Ball.Speed)

	bounced := false
	for range 3 {
		events := w.Update(100*time.Millisecond, input())
		if countEvents(events, core.EventLifeLost) != 0 {
			t.Fatalf("ball lost at 10 fps, ball at %v", b.Pos)
		}
		bounced = bounced || b.Vel.Y < 0
	}
	if !bounced || p.Hearts != cfg.Paddle.Hearts {
		t.Errorf("bounced = %v, hearts = %d", bounced, p.Hearts)
	}
}

func TestBallHitPlaysSound(t *testing.T) {
	ctrl := gomock.NewController(t)
	player := mock_audio.NewMockPlayer(ctrl)
	player.EXPECT().Play(audio.SoundBlockHit, volumeBlockHit).Times(1)

	cfg := testConfig()
	w := NewWorld(cfg, testStage(), testField(), &seqRand{vals: []int{99}})
	w.SetAudio(player)

	// Straight below the blue block, heading up into it
	b := w.Ball()
	b.State = BallLaunched
	b.Pos = core.V(72.5, 6.4)
	b.Vel = core.V(0.3, -1).Normalize().Scale(cfg.Ball.Speed)

	events := w.Update(50*time.Millisecond, input())

	if countEvents(events, core.EventBlockHit) != 1 {
		t.Errorf("events = %v", events)
	}
	if b.Vel.Y <= 0 {
		t.Errorf("ball not reflected: %v", b.Vel)
	}
}
