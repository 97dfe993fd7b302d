package core

// Sprite is a small rectangular block of cells drawn as a unit.
// Cells with Rune 0 are transparent.
type Sprite struct {
	W, H  int
	Cells []Cell
}

// NewSprite allocates a fully transparent sprite.
func NewSprite(w, h int) Sprite {
	w, h = Max(w, 0), Max(h, 0)
	return Sprite{W: w, H: h, Cells: make([]Cell, w*h)}
}

// Set writes a cell. Out-of-bounds coordinates are ignored.
func (s Sprite) Set(x, y int, c Cell) {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return
	}
	s.Cells[y*s.W+x] = c
}

// At returns the cell at (x, y), or a transparent cell when out of bounds.
func (s Sprite) At(x, y int) Cell {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return Cell{}
	}
	return s.Cells[y*s.W+x]
}

// NineSlice describes a bordered surface built from four corners, four
// edges and a centre glyph. A zero Center leaves the interior transparent.
type NineSlice struct {
	TopLeft, Top, TopRight          rune
	Left, Center, Right             rune
	BottomLeft, Bottom, BottomRight rune
}

// BoxFrame is the plain line-drawing frame used for the play-field border.
var BoxFrame = NineSlice{
	TopLeft: '┌', Top: '─', TopRight: '┐',
	Left: '│', Right: '│',
	BottomLeft: '└', Bottom: '─', BottomRight: '┘',
}

// Compose tiles the slice into a w×h sprite of the given color.
//
// A height of 1 collapses to a single row using the left, centre and right
// glyphs; a width of 1 collapses to a single column of top, centre and bottom.
func (n NineSlice) Compose(w, h int, color Color) Sprite {
	sp := NewSprite(w, h)
	if w == 0 || h == 0 {
		return sp
	}

	for y := range h {
		for x := range w {
			r := n.pick(x, y, w, h)
			if r == 0 {
				continue
			}
			sp.Set(x, y, Cell{Rune: r, Color: color})
		}
	}
	return sp
}

func (n NineSlice) pick(x, y, w, h int) rune {
	first, lastX, lastY := x == 0, x == w-1, y == h-1

	switch {
	case w == 1 && h == 1:
		return n.Center
	case h == 1:
		switch {
		case first:
			return n.Left
		case lastX:
			return n.Right
		}
		return n.Center
	case w == 1:
		switch {
		case y == 0:
			return n.Top
		case lastY:
			return n.Bottom
		}
		return n.Center
	}

	switch {
	case y == 0 && first:
		return n.TopLeft
	case y == 0 && lastX:
		return n.TopRight
	case y == 0:
		return n.Top
	case lastY && first:
		return n.BottomLeft
	case lastY && lastX:
		return n.BottomRight
	case lastY:
		return n.Bottom
	case first:
		return n.Left
	case lastX:
		return n.Right
	}
	return n.Center
}
