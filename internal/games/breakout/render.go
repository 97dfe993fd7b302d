package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	HeartChar   = '♥'
	EmitterChar = '╨'
)

var paddleSlice = core.NineSlice{
	TopLeft: '▗', Top: '▄', TopRight: '▖',
	Left: '◖', Center: '█', Right: '◗',
	BottomLeft: '▝', Bottom: '▀', BottomRight: '▘',
}

// Render draws the current game state to the screen. It only reads the
// state left by the last Step.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall || g.world == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	w := g.world
	g.renderBorder(dst)
	renderBlocks(dst, w)
	renderUpgrades(dst, w)
	renderProjectiles(dst, w)
	renderPaddle(dst, w)
	renderBall(dst, w)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderBorder draws the side walls and the top wall below the HUD.
func (g *Game) renderBorder(dst *core.Screen) {
	top := g.opts.Config.Layout.HUDRows
	// The frame extends one row past the screen so no bottom wall shows.
	dst.DrawBox(core.NewRect(0, top, dst.Width(), dst.Height()-top+1))
}

func cellOf(p core.Vec2) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

func renderBlocks(dst *core.Screen, w *World) {
	for _, b := range w.Arena().Blocks() {
		r := core.CellRect(b.Bounds())
		dst.DrawSprite(r.X, r.Y, b.Sprite())
	}
}

func renderUpgrades(dst *core.Screen, w *World) {
	for _, u := range w.Arena().Upgrades() {
		k := upgradeKinds[u.Type]
		x, y := cellOf(u.Pos)
		dst.SetColored(x, y, k.glyph, k.color)
	}
}

func renderProjectiles(dst *core.Screen, w *World) {
	for _, p := range w.Arena().Projectiles() {
		x, y := cellOf(p.Pos)
		dst.SetColored(x, y, ProjectileChar, core.ColorBrightRed)
	}
}

func renderPaddle(dst *core.Screen, w *World) {
	p := w.Paddle()
	r := core.CellRect(p.Bounds())
	dst.DrawSprite(r.X, r.Y, paddleSlice.Compose(r.W, r.H, core.ColorBrightCyan))

	for _, pt := range p.LaserPoints() {
		x := int(math.Floor(pt.X))
		dst.SetColored(x, r.Y, EmitterChar, core.ColorBrightRed)
	}
}

func renderBall(dst *core.Screen, w *World) {
	x, y := cellOf(w.Ball().Pos)
	dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
}

// renderHUD draws hearts, lasers and the stage indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.world.Paddle()

	// Hearts on left
	dst.DrawColoredText(1, 0, strings.Repeat(string(HeartChar), p.Hearts), core.ColorRed)

	// Lasers in center
	if p.Lasers > 0 {
		dst.DrawTextCentered(0, fmt.Sprintf("Laser x%d", p.Lasers))
	}

	// Stage on right
	stageText := fmt.Sprintf("%s %d/%d", g.world.Stage().Name, g.stageIdx+1, len(g.opts.Stages))
	dst.DrawText(dst.Width()-len([]rune(stageText))-1, 0, stageText)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.world.GameOver():
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Stage %d  |  Press R to restart", g.stageIdx+1))
	case g.won:
		g.drawCenteredBox(dst, "YOU WIN!", "Every stage cleared  |  Press R to restart")
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.world.Ball().State == BallDocked:
		dst.DrawTextCentered(launchHintRow(g.world), "Press SPACE to launch")
	}
}

// launchHintRow is two rows above the docked ball, inside the field.
func launchHintRow(w *World) int {
	row := int(math.Floor(w.Paddle().Bounds().Top())) - 3
	return max(row, int(w.Field().Top()))
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
