package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Projectile glyph and hitbox.
const (
	ProjectileChar   = '¦'
	projectileWidth  = 0.4
	projectileHeight = 1.0
)

// Projectile is a laser bolt travelling straight up.
type Projectile struct {
	entityBase
	Pos   core.Vec2 // Centre
	Speed float64   // Upward, cells per second
}

// NewProjectile creates a bolt centred on pos.
func NewProjectile(pos core.Vec2, speed float64) *Projectile {
	return &Projectile{Pos: pos, Speed: speed}
}

func (p *Projectile) Kind() Kind { return KindProjectile }

func (p *Projectile) Bounds() core.Box {
	return core.BoxAround(p.Pos, projectileWidth, projectileHeight)
}

// Update moves the bolt up.
func (p *Projectile) Update(dt float64) {
	p.Pos.Y -= p.Speed * dt
}

// Gone reports whether the bolt left the top of the playfield.
func (p *Projectile) Gone(field core.Box) bool {
	return p.Bounds().Bottom() < field.Top()
}
