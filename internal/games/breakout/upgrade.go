package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// UpgradeType is the effect an upgrade applies to the paddle.
type UpgradeType int

const (
	UpgradeSizeUp UpgradeType = iota
	UpgradeSizeDown
	UpgradeSpeedUp
	UpgradeSpeedDown
	UpgradeLaser
	UpgradeHeart
)

type upgradeKind struct {
	name  string
	glyph rune
	color core.Color
}

var upgradeKinds = [...]upgradeKind{
	UpgradeSizeUp:    {config.UpgradeSizeUp, 'W', core.ColorBrightCyan},
	UpgradeSizeDown:  {config.UpgradeSizeDown, 'N', core.ColorMagenta},
	UpgradeSpeedUp:   {config.UpgradeSpeedUp, 'F', core.ColorBrightYellow},
	UpgradeSpeedDown: {config.UpgradeSpeedDown, 'S', core.ColorYellow},
	UpgradeLaser:     {config.UpgradeLaser, 'L', core.ColorBrightRed},
	UpgradeHeart:     {config.UpgradeHeart, '♥', core.ColorRed},
}

func (t UpgradeType) String() string {
	if t < 0 || int(t) >= len(upgradeKinds) {
		return "unknown"
	}
	return upgradeKinds[t].name
}

// ParseUpgradeType resolves a config name to an upgrade type.
func ParseUpgradeType(name string) (UpgradeType, bool) {
	for t, k := range upgradeKinds {
		if k.name == name {
			return UpgradeType(t), true
		}
	}
	return 0, false
}

// upgradeTypes resolves the enabled names, skipping unknown ones.
func upgradeTypes(names []string) []UpgradeType {
	out := make([]UpgradeType, 0, len(names))
	for _, n := range names {
		if t, ok := ParseUpgradeType(n); ok {
			out = append(out, t)
		}
	}
	return out
}

// Upgrade is a pickup falling from a destroyed block.
type Upgrade struct {
	entityBase
	Type  UpgradeType
	Pos   core.Vec2 // Centre
	Speed float64   // Downward, cells per second
}

const upgradeSize = 1.0

// NewUpgrade creates an upgrade centred on pos.
func NewUpgrade(t UpgradeType, pos core.Vec2, speed float64) *Upgrade {
	return &Upgrade{Type: t, Pos: pos, Speed: speed}
}

func (u *Upgrade) Kind() Kind { return KindUpgrade }

func (u *Upgrade) Bounds() core.Box {
	return core.BoxAround(u.Pos, upgradeSize, upgradeSize)
}

// Update moves the upgrade down.
func (u *Upgrade) Update(dt float64) {
	u.Pos.Y += u.Speed * dt
}

// Gone reports whether the upgrade fell past the bottom edge.
func (u *Upgrade) Gone(field core.Box) bool {
	return u.Bounds().Top() > field.Bottom()
}
