package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawText(0, 0, "ab")
	s.DrawColoredText(2, 0, "cd", core.ColorRed)
	s.SetCell(5, 1, core.Cell{Rune: '#', Color: core.ColorGold, Faint: true})
	s.DrawColoredText(0, 2, "xyz", core.ColorPurple)

	got := strings.Split(stripANSI(RenderScreen(s)), "\n")
	want := []string{"abcd  ", "     #", "xyz   "}

	if len(got) != len(want) {
		t.Fatalf("got %d rows, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestRenderScreenOverlay(t *testing.T) {
	s := core.NewScreen(4, 5)
	s.DrawText(0, 0, "top")
	s.DrawOverlay(0.7)

	// Faint rows keep their text
	if got := strings.Split(stripANSI(RenderScreen(s)), "\n")[0]; got != "top " {
		t.Errorf("row 0 = %q", got)
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGold; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	cell := core.Cell{Rune: 'x', Color: core.Color(200)}
	if got := stripANSI(styleFor(cell).Render("x")); got != "x" {
		t.Errorf("Render() = %q", got)
	}
}
