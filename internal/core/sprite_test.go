package core

import "testing"

func spriteRows(sp Sprite) []string {
	rows := make([]string, sp.H)
	for y := range sp.H {
		row := make([]rune, sp.W)
		for x := range sp.W {
			r := sp.At(x, y).Rune
			if r == 0 {
				r = '.'
			}
			row[x] = r
		}
		rows[y] = string(row)
	}
	return rows
}

func TestNineSliceCompose(t *testing.T) {
	slice := NineSlice{
		TopLeft: 'a', Top: 'b', TopRight: 'c',
		Left: 'd', Center: 'e', Right: 'f',
		BottomLeft: 'g', Bottom: 'h', BottomRight: 'i',
	}

	tests := []struct {
		name string
		w, h int
		want []string
	}{
		{"full", 4, 3, []string{"abbc", "deef", "ghhi"}},
		{"single row", 4, 1, []string{"deef"}},
		{"single column", 1, 3, []string{"b", "e", "h"}},
		{"single cell", 1, 1, []string{"e"}},
		{"two by two", 2, 2, []string{"ac", "gi"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp := slice.Compose(tc.w, tc.h, ColorGold)
			got := spriteRows(sp)
			if len(got) != len(tc.want) {
				t.Fatalf("Compose() rows = %d, expected %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("row %d = %q, expected %q", i, got[i], tc.want[i])
				}
			}
			if c := sp.At(0, 0); c.Color != ColorGold {
				t.Errorf("Compose() color = %d, expected ColorGold", c.Color)
			}
		})
	}
}

func TestBoxFrameLeavesInteriorTransparent(t *testing.T) {
	sp := BoxFrame.Compose(3, 3, ColorDefault)
	if sp.At(1, 1).Rune != 0 {
		t.Errorf("BoxFrame interior = %q, expected transparent", sp.At(1, 1).Rune)
	}
}

func TestComposeEmpty(t *testing.T) {
	sp := BoxFrame.Compose(0, 5, ColorDefault)
	if len(sp.Cells) != 0 {
		t.Errorf("Compose(0, 5) should produce no cells, got %d", len(sp.Cells))
	}
}

func TestSpriteOutOfBounds(t *testing.T) {
	sp := NewSprite(2, 2)
	sp.Set(5, 5, Cell{Rune: 'x'})
	if c := sp.At(5, 5); c.Rune != 0 {
		t.Errorf("At() out of bounds = %q", c.Rune)
	}
}
