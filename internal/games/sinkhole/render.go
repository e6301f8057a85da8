package sinkhole

import (
	"fmt"

	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/levels"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/progress"
)

// Glyphs for the top-down view
const (
	GroundChar  = '·'
	CutChar     = '░'
	HoleChar    = '▓'
	HoleCenter  = '●'
	FallingChar = '*'
)

// shapeGlyphs maps level object shapes to their screen rune.
var shapeGlyphs = map[string]rune{
	"ball":     'o',
	"cone":     '▲',
	"pot":      'p',
	"crate":    '■',
	"bench":    '=',
	"cart":     '&',
	"car":      '@',
	"tree":     'T',
	"fountain": 'F',
	"statue":   '$',
}

// glyphFor picks a rune for an object shape, falling back to a generic block.
func glyphFor(shape string) rune {
	if g, ok := shapeGlyphs[shape]; ok {
		return g
	}
	return '■'
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)

	if g.manager.State() == progress.StateComplete {
		g.renderOverlay(dst)
		return
	}

	g.renderField(dst)
	g.renderCuts(dst)
	g.renderHole(dst)
	g.renderObjects(dst)
	g.renderOverlay(dst)
}

// fieldTop is the first playfield row; the two rows above hold the HUD.
const fieldTop = 2

// project maps world ground coordinates into screen cells. The square play
// area is stretched to fill the field, which also compensates a little for
// the 2:1 cell aspect of terminals.
func (g *Game) project(dst *core.Screen, x, z float64) (int, int) {
	he := g.world.HalfExtent()
	if he <= 0 {
		he = 10
	}
	fieldW := dst.Width()
	fieldH := dst.Height() - fieldTop

	cx := int((x + he) / (2 * he) * float64(fieldW-1))
	cy := fieldTop + int((z+he)/(2*he)*float64(fieldH-1))
	return cx, cy
}

// scale returns cells-per-world-unit along each screen axis.
func (g *Game) scale(dst *core.Screen) (float64, float64) {
	he := g.world.HalfExtent()
	if he <= 0 {
		he = 10
	}
	sx := float64(dst.Width()-1) / (2 * he)
	sy := float64(dst.Height()-fieldTop-1) / (2 * he)
	return sx, sy
}

// renderHUD draws the level info and progress counters.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.manager.CurrentLevel()

	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Level %d: %s", g.manager.LevelIndex()+1, lvl.Name)
	} else {
		levelText = fmt.Sprintf("Level %d/%d: %s", g.manager.LevelIndex()+1, len(g.catalog), lvl.Name)
	}
	dst.DrawText(1, 0, levelText)

	radiusText := fmt.Sprintf("Size: %.2f", g.machine.Radius())
	dst.DrawText(dst.Width()-len(radiusText)-1, 0, radiusText)

	goal := g.goalString(lvl)
	dst.DrawText(1, 1, goal)

	swallowed := fmt.Sprintf("Swallowed: %d", g.swallowedTotal)
	dst.DrawText(dst.Width()-len(swallowed)-1, 1, swallowed)
}

// goalString describes the active victory condition and its progress.
func (g *Game) goalString(lvl levels.Level) string {
	switch lvl.Victory.Kind {
	case levels.VictoryAllObjects:
		return fmt.Sprintf("Goal: swallow everything (%d left)", g.manager.Remaining())
	case levels.VictoryHoleSize:
		return fmt.Sprintf("Goal: grow to %.2f", lvl.Victory.TargetRadius)
	case levels.VictoryRequiredObjects:
		return fmt.Sprintf("Goal: swallow the marked targets (%d left)", g.manager.RequiredRemaining())
	default:
		return "Goal: ?"
	}
}

// renderField dots the ground so the play area reads as a surface.
func (g *Game) renderField(dst *core.Screen) {
	for y := fieldTop; y < dst.Height(); y += 2 {
		for x := 0; x < dst.Width(); x += 4 {
			dst.SetColored(x, y, GroundChar, core.ColorGray)
		}
	}
}

// renderCuts stamps every recorded terrain cut.
func (g *Game) renderCuts(dst *core.Screen) {
	for _, c := range g.world.Cuts() {
		g.fillCircle(dst, c.X, c.Z, c.Radius, CutChar, core.ColorGray)
	}
}

// renderHole draws the hole opening at its current position and size.
func (g *Game) renderHole(dst *core.Screen) {
	pos := g.machine.Position()
	g.fillCircle(dst, pos.X, pos.Z, g.machine.Radius(), HoleChar, core.ColorMagenta)

	cx, cy := g.project(dst, pos.X, pos.Z)
	dst.SetColored(cx, cy, HoleCenter, core.ColorBrightWhite)
}

// renderObjects draws the live objects. Required targets are highlighted;
// objects mid-fall dim out as they sink.
func (g *Game) renderObjects(dst *core.Screen) {
	for _, o := range g.world.Live() {
		cx, cy := g.project(dst, o.Pos.X, o.Pos.Z)

		glyph := glyphFor(o.Shape)
		color := core.ColorDefault
		switch {
		case o.Falling:
			glyph = FallingChar
			color = core.ColorGray
		case o.Required:
			color = core.ColorYellow
		}
		dst.SetColored(cx, cy, glyph, color)
	}
}

// fillCircle stamps a filled circle of world radius r centered at (x, z).
func (g *Game) fillCircle(dst *core.Screen, x, z, r float64, ch rune, color core.Color) {
	sx, sy := g.scale(dst)
	rx := r * sx
	ry := r * sy
	if rx < 0.5 {
		rx = 0.5
	}
	if ry < 0.5 {
		ry = 0.5
	}

	cx, cy := g.project(dst, x, z)
	for dy := -int(ry); dy <= int(ry); dy++ {
		for dx := -int(rx); dx <= int(rx); dx++ {
			fx := float64(dx) / rx
			fy := float64(dy) / ry
			if fx*fx+fy*fy <= 1.0 && cy+dy >= fieldTop {
				dst.SetColored(cx+dx, cy+dy, ch, color)
			}
		}
	}
}

// renderOverlay draws state messages on top of the field.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.manager.State() == progress.StateComplete:
		subtitle := fmt.Sprintf("Swallowed %d objects  |  Press R to restart", g.swallowedTotal)
		g.drawCenteredBox(dst, "EVERYTHING IS GONE", subtitle)

	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case g.banner != "":
		dst.DrawTextCentered(dst.Height()/2, g.banner)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
