package breakout

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestArenaAddRemove(t *testing.T) {
	a := NewArena()
	b1 := NewBlock(BlockBlue, core.Box{W: 2, H: 1})
	b2 := NewBlock(BlockBlue, core.Box{X: 3, W: 2, H: 1})
	u := NewUpgrade(UpgradeLaser, core.V(5, 5), 1)

	id1 := a.Add(b1)
	id2 := a.Add(b2)
	idU := a.Add(u)

	if id1 == 0 || id2 <= id1 || idU <= id2 {
		t.Fatalf("IDs not monotonic: %d %d %d", id1, id2, idU)
	}
	if b1.ID() != id1 {
		t.Errorf("entity ID = %d, expected %d", b1.ID(), id1)
	}
	if a.Len() != 3 || a.Count(KindBlock) != 2 || a.Count(KindUpgrade) != 1 {
		t.Fatalf("counts: len %d blocks %d upgrades %d", a.Len(), a.Count(KindBlock), a.Count(KindUpgrade))
	}

	if !a.Remove(id1) {
		t.Fatal("Remove() of live entity returned false")
	}
	if a.Has(id1) {
		t.Error("removed entity still present")
	}
	if len(a.All()) != 2 || len(a.Blocks()) != 1 {
		t.Errorf("removal left stale membership: all %d blocks %d", len(a.All()), len(a.Blocks()))
	}

	// Idempotent
	if a.Remove(id1) {
		t.Error("second Remove() returned true")
	}
	if a.Len() != 2 {
		t.Errorf("Len() after double remove = %d", a.Len())
	}
}

func TestArenaSnapshotIteration(t *testing.T) {
	a := NewArena()
	for i := range 5 {
		a.Add(NewBlock(BlockBlue, core.Box{X: float64(i * 3), W: 2, H: 1}))
	}

	seen := map[EntityID]int{}
	for _, b := range a.Blocks() {
		seen[b.ID()]++
		a.Remove(b.ID())
	}

	if len(seen) != 5 {
		t.Errorf("visited %d blocks while removing, expected 5", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("block %d visited %d times", id, n)
		}
	}
	if a.Count(KindBlock) != 0 {
		t.Errorf("blocks left: %d", a.Count(KindBlock))
	}
}

func TestArenaKeepsInsertionOrder(t *testing.T) {
	a := NewArena()
	var ids []EntityID
	for i := range 4 {
		ids = append(ids, a.Add(NewProjectile(core.V(float64(i), 0), 1)))
	}
	a.Remove(ids[1])

	got := a.Projectiles()
	want := []EntityID{ids[0], ids[2], ids[3]}
	for i, p := range got {
		if p.ID() != want[i] {
			t.Errorf("Projectiles()[%d] = %d, expected %d", i, p.ID(), want[i])
		}
	}
}

func TestArenaCountsUnindexedKinds(t *testing.T) {
	a := NewArena()
	field := testField()
	p := NewPaddle(testConfig().Paddle, 0, field)
	a.Add(p)
	a.Add(NewBall(testConfig().Ball, p))

	if a.Count(KindPaddle) != 1 || a.Count(KindBall) != 1 {
		t.Errorf("Count(paddle) = %d, Count(ball) = %d", a.Count(KindPaddle), a.Count(KindBall))
	}
	if got, ok := a.Get(p.ID()); !ok || got.Kind() != KindPaddle {
		t.Errorf("Get(paddle) = %v, %v", got, ok)
	}
}

func TestArenaBulkRemoveKeepsOrder(t *testing.T) {
	a := NewArena()
	var ids []EntityID
	for i := range 1000 {
		ids = append(ids, a.Add(NewBlock(BlockBlue, core.Box{X: float64(i), W: 1, H: 1})))
	}

	// Removing two of every three forces compaction
	for i, id := range ids {
		if i%3 != 0 {
			a.Remove(id)
		}
	}

	blocks := a.Blocks()
	if len(blocks) != 334 || a.Count(KindBlock) != 334 || a.Len() != 334 {
		t.Fatalf("got %d blocks (count %d, len %d), expected 334", len(blocks), a.Count(KindBlock), a.Len())
	}
	for i, b := range blocks {
		if b.ID() != ids[i*3] {
			t.Fatalf("block %d has ID %d, expected %d", i, b.ID(), ids[i*3])
		}
	}

	// Removed IDs stay removed after compaction and new ones go last
	if a.Remove(ids[1]) {
		t.Error("Remove() of a compacted-away ID returned true")
	}
	last := a.Add(NewBlock(BlockBlue, core.Box{W: 1, H: 1}))
	if blocks = a.Blocks(); blocks[len(blocks)-1].ID() != last {
		t.Errorf("new block not last: %d", blocks[len(blocks)-1].ID())
	}
	if all := a.All(); len(all) != 335 || all[0].ID() != ids[0] {
		t.Errorf("All() = %d entities, first %d", len(all), all[0].ID())
	}
}
