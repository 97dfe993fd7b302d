package breakout

import "math"

// Snapshot is a flat summary of the game state for determinism checks.
// Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick     uint64
	Stage    int
	NowNanos int64
	Hearts   int
	Lasers   int
	GameOver bool
	Won      bool

	// Paddle: X, SizeMult, SpeedMult as float bits
	PaddleData []uint64

	// Ball: State, X, Y, VX, VY (floats as bits)
	BallData []uint64

	// Blocks in arena order: ID, HP
	BlockData []uint64

	// Upgrades in arena order: ID, Type, X, Y
	UpgradeData []uint64

	// Projectiles in arena order: ID, X, Y
	ProjectileData []uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	p := w.Paddle()
	b := w.Ball()

	snap := Snapshot{
		Tick:     g.tick,
		Stage:    g.stageIdx,
		NowNanos: int64(w.Now()),
		Hearts:   p.Hearts,
		Lasers:   p.Lasers,
		GameOver: w.GameOver(),
		Won:      g.won,
		PaddleData: []uint64{
			math.Float64bits(p.X), math.Float64bits(p.SizeMult), math.Float64bits(p.SpeedMult),
		},
		BallData: []uint64{
			uint64(b.State), //#nosec G115 -- hash computation
			math.Float64bits(b.Pos.X), math.Float64bits(b.Pos.Y),
			math.Float64bits(b.Vel.X), math.Float64bits(b.Vel.Y),
		},
	}

	for _, blk := range w.Arena().Blocks() {
		snap.BlockData = append(snap.BlockData, uint64(blk.ID()), uint64(blk.HP)) //#nosec G115 -- hash computation
	}
	for _, u := range w.Arena().Upgrades() {
		snap.UpgradeData = append(snap.UpgradeData,
			uint64(u.ID()), uint64(u.Type), //#nosec G115 -- hash computation
			math.Float64bits(u.Pos.X), math.Float64bits(u.Pos.Y))
	}
	for _, pr := range w.Arena().Projectiles() {
		snap.ProjectileData = append(snap.ProjectileData,
			uint64(pr.ID()), math.Float64bits(pr.Pos.X), math.Float64bits(pr.Pos.Y))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Stage)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NowNanos) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Hearts)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lasers)   //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.GameOver)
	h = h*31 + boolBit(snap.Won)

	for _, data := range [][]uint64{
		snap.PaddleData, snap.BallData, snap.BlockData, snap.UpgradeData, snap.ProjectileData,
	} {
		h = h*31 + uint64(len(data))
		for _, v := range data {
			h = h*31 + v
		}
	}
	return h
}

// Hash returns the hash of the current state.
func (g *Game) Hash() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
