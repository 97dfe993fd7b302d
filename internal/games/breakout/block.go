package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// BlockType is the stage-map tag of a block.
type BlockType int

const (
	BlockBlue BlockType = iota
	BlockGreen
	BlockRed
	BlockOrange
	BlockPurple
	BlockBronze
	BlockGrey
	BlockGold
	BlockSteel
)

type blockKind struct {
	symbol       rune
	name         string
	hp           int
	destructible bool
	color        core.Color
}

var blockKinds = [...]blockKind{
	BlockBlue:   {'1', "blue", 1, true, core.ColorBlue},
	BlockGreen:  {'2', "green", 2, true, core.ColorGreen},
	BlockRed:    {'3', "red", 3, true, core.ColorRed},
	BlockOrange: {'4', "orange", 4, true, core.ColorOrange},
	BlockPurple: {'5', "purple", 5, true, core.ColorPurple},
	BlockBronze: {'6', "bronze", 6, true, core.ColorBronze},
	BlockGrey:   {'7', "grey", 7, true, core.ColorGray},
	BlockGold:   {'G', "gold", 3, true, core.ColorGold},
	BlockSteel:  {'X', "steel", 0, false, core.ColorBrightWhite},
}

func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockKinds) {
		return "unknown"
	}
	return blockKinds[t].name
}

// BlockTypeForSymbol maps a stage-map symbol to its block type.
func BlockTypeForSymbol(r rune) (BlockType, bool) {
	for t, k := range blockKinds {
		if k.symbol == r {
			return BlockType(t), true
		}
	}
	return 0, false
}

// IsBlankSymbol reports whether a stage-map cell holds no block.
func IsBlankSymbol(r rune) bool {
	return r == ' ' || r == '.'
}

// DamageLevel is the visual wear of a block.
type DamageLevel int

const (
	DamageIntact DamageLevel = iota
	DamageScuffed
	DamageCracked
	DamageCrumbling
)

// damageTable maps the remaining HP fraction to a wear level. Entries are
// checked top-down; the first whose floor the fraction exceeds wins.
var damageTable = [...]struct {
	above float64
	level DamageLevel
	glyph rune
}{
	{0.75, DamageIntact, '█'},
	{0.50, DamageScuffed, '▓'},
	{0.25, DamageCracked, '▒'},
	{-1, DamageCrumbling, '░'},
}

// damageLevelFor looks up the wear level for hp out of maxHP.
// Fractions outside [0, 1] clamp to the nearest level.
func damageLevelFor(hp, maxHP int) DamageLevel {
	if maxHP <= 0 {
		return DamageIntact
	}
	frac := float64(hp) / float64(maxHP)
	if frac >= 1 {
		return DamageIntact
	}
	for _, e := range damageTable {
		if frac > e.above {
			return e.level
		}
	}
	return DamageCrumbling
}

// Glyph returns the fill rune for a damage level.
func (d DamageLevel) Glyph() rune {
	if d < 0 {
		d = DamageIntact
	}
	if int(d) >= len(damageTable) {
		d = DamageCrumbling
	}
	return damageTable[d].glyph
}

// Block is a grid cell of the stage.
type Block struct {
	entityBase
	Type         BlockType
	HP           int
	MaxHP        int
	Damage       DamageLevel
	Destructible bool

	box    core.Box
	sprite core.Sprite
}

// NewBlock creates a block of type t occupying box.
func NewBlock(t BlockType, box core.Box) *Block {
	k := blockKinds[t]
	b := &Block{
		Type:         t,
		HP:           k.hp,
		MaxHP:        k.hp,
		Destructible: k.destructible,
		box:          box,
	}
	b.compose()
	return b
}

func (b *Block) Kind() Kind          { return KindBlock }
func (b *Block) Bounds() core.Box    { return b.box }
func (b *Block) Sprite() core.Sprite { return b.sprite }

// GetDamage applies damage and reports whether the block was depleted.
// Indestructible blocks ignore damage. Removal is the caller's job.
func (b *Block) GetDamage(amount int) bool {
	if !b.Destructible || amount <= 0 {
		return false
	}
	b.HP = max(0, b.HP-amount)

	if lvl := damageLevelFor(b.HP, b.MaxHP); lvl != b.Damage {
		b.Damage = lvl
		b.compose()
	}
	return b.HP <= 0
}

// compose rebuilds the cached sprite for the current damage level.
func (b *Block) compose() {
	r := core.CellRect(b.box)
	b.sprite = blockSlice(b.Type, b.Damage).Compose(r.W, r.H, blockKinds[b.Type].color)
}

func blockSlice(t BlockType, d DamageLevel) core.NineSlice {
	fill := d.Glyph()
	if t == BlockSteel {
		return core.NineSlice{
			TopLeft: '╔', Top: '═', TopRight: '╗',
			Left: '[', Center: '#', Right: ']',
			BottomLeft: '╚', Bottom: '═', BottomRight: '╝',
		}
	}
	return core.NineSlice{
		TopLeft: '▛', Top: '▀', TopRight: '▜',
		Left: '▐', Center: fill, Right: '▌',
		BottomLeft: '▙', Bottom: '▄', BottomRight: '▟',
	}
}
