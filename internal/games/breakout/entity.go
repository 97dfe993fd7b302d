package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// EntityID identifies an entity for its whole lifetime. IDs are never reused.
type EntityID uint64

// Kind tags the category an entity belongs to.
type Kind int

const (
	KindPaddle Kind = iota
	KindBall
	KindBlock
	KindUpgrade
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindPaddle:
		return "paddle"
	case KindBall:
		return "ball"
	case KindBlock:
		return "block"
	case KindUpgrade:
		return "upgrade"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Entity is anything that lives in the arena.
type Entity interface {
	ID() EntityID
	Kind() Kind
	Bounds() core.Box
	base() *entityBase
}

// entityBase is embedded by every entity type.
type entityBase struct {
	id EntityID
}

func (e *entityBase) ID() EntityID      { return e.id }
func (e *entityBase) base() *entityBase { return e }

// indexSet is an insertion-ordered set of IDs. Removal leaves a zero
// tombstone at the entity's slot and the slice is compacted once half of
// it is dead, so removing is O(1) amortised and order is kept.
type indexSet struct {
	ids  []EntityID
	pos  map[EntityID]int
	dead int
}

func newIndexSet() indexSet {
	return indexSet{pos: make(map[EntityID]int)}
}

func (s *indexSet) add(id EntityID) {
	if _, ok := s.pos[id]; ok {
		return
	}
	s.pos[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *indexSet) remove(id EntityID) {
	i, ok := s.pos[id]
	if !ok {
		return
	}
	delete(s.pos, id)
	s.ids[i] = 0
	s.dead++
	if s.dead*2 > len(s.ids) {
		s.compact()
	}
}

func (s *indexSet) compact() {
	live := s.ids[:0]
	for _, id := range s.ids {
		if id == 0 {
			continue
		}
		s.pos[id] = len(live)
		live = append(live, id)
	}
	clear(s.ids[len(live):])
	s.ids = live
	s.dead = 0
}

func (s *indexSet) len() int {
	return len(s.pos)
}

func (s *indexSet) snapshot() []EntityID {
	out := make([]EntityID, 0, s.len())
	for _, id := range s.ids {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// Arena is the single owner of every entity in a world.
//
// Category membership is tracked in index sets keyed by ID, so removing an
// entity is one call that clears it from the store and from every set.
// Iteration helpers return snapshots; callers may remove while iterating.
type Arena struct {
	nextID EntityID
	items  map[EntityID]Entity

	all         indexSet
	blocks      indexSet
	upgrades    indexSet
	projectiles indexSet
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		items:       make(map[EntityID]Entity),
		all:         newIndexSet(),
		blocks:      newIndexSet(),
		upgrades:    newIndexSet(),
		projectiles: newIndexSet(),
	}
}

// Add assigns a fresh ID to e and inserts it into the store and its sets.
func (a *Arena) Add(e Entity) EntityID {
	a.nextID++
	id := a.nextID
	e.base().id = id

	a.items[id] = e
	a.all.add(id)
	if set := a.setFor(e.Kind()); set != nil {
		set.add(id)
	}
	return id
}

// Remove deletes the entity from the store and every index set.
// Removing an unknown or already removed ID is a no-op.
func (a *Arena) Remove(id EntityID) bool {
	e, ok := a.items[id]
	if !ok {
		return false
	}
	delete(a.items, id)
	a.all.remove(id)
	if set := a.setFor(e.Kind()); set != nil {
		set.remove(id)
	}
	return true
}

// Has reports whether the entity is still alive.
func (a *Arena) Has(id EntityID) bool {
	_, ok := a.items[id]
	return ok
}

// Get returns the entity by ID.
func (a *Arena) Get(id EntityID) (Entity, bool) {
	e, ok := a.items[id]
	return e, ok
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return len(a.items)
}

func (a *Arena) setFor(k Kind) *indexSet {
	switch k {
	case KindBlock:
		return &a.blocks
	case KindUpgrade:
		return &a.upgrades
	case KindProjectile:
		return &a.projectiles
	default:
		return nil
	}
}

// All returns every live entity in insertion order.
func (a *Arena) All() []Entity {
	ids := a.all.snapshot()
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.items[id])
	}
	return out
}

// Blocks returns a snapshot of live blocks in insertion order.
func (a *Arena) Blocks() []*Block {
	return collect[*Block](a, &a.blocks)
}

// Upgrades returns a snapshot of live upgrades in insertion order.
func (a *Arena) Upgrades() []*Upgrade {
	return collect[*Upgrade](a, &a.upgrades)
}

// Projectiles returns a snapshot of live projectiles in insertion order.
func (a *Arena) Projectiles() []*Projectile {
	return collect[*Projectile](a, &a.projectiles)
}

// Count returns the size of a category.
func (a *Arena) Count(k Kind) int {
	if set := a.setFor(k); set != nil {
		return set.len()
	}
	n := 0
	for _, e := range a.items {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

func collect[T Entity](a *Arena, set *indexSet) []T {
	out := make([]T, 0, set.len())
	for _, id := range set.ids {
		if id == 0 {
			continue
		}
		if e, ok := a.items[id].(T); ok {
			out = append(out, e)
		}
	}
	return out
}
