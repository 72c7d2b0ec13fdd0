package rainbow

import (
	"fmt"
	"math"

	"github.com/vovakirdan/rainbow-arcade/internal/core"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow/sim"
)

// Minimum terminal size the playfield can be drawn in.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// Visual constants for terminal rendering
const (
	PlatformChar = '▀'
	PlayerChar   = '█'
	EnemyChar    = '▲'
	FruitChar    = '●'
	TrophyChar   = '★'
	ArcChar      = '*'
	HUDRow       = 0
)

// BandColors are the rainbow stripes from top to bottom.
var BandColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
}

var (
	enemyFrames = []rune{'▲', '▴'}
	spinFrames  = []rune{'|', '/', '─', '\\'}
)

// viewport maps world pixels onto the cells below the HUD row.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(v sim.View, dst *core.Screen) viewport {
	return viewport{
		sx:  float64(dst.Width()) / v.ScreenW,
		sy:  float64(dst.Height()-1) / v.ScreenH,
		top: HUDRow + 1,
	}
}

func (vp viewport) col(x float64) int {
	return int(math.Floor(x * vp.sx))
}

func (vp viewport) row(y float64) int {
	return vp.top + int(math.Floor(y*vp.sy))
}

// rect converts a world box to cells. Every visible box covers at least one cell.
func (vp viewport) rect(b core.Box) core.Rect {
	x0, y0 := vp.col(b.X), vp.row(b.Y)
	x1 := int(math.Ceil(b.Right() * vp.sx))
	y1 := vp.top + int(math.Ceil(b.Bottom()*vp.sy))
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Render draws the current frame to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, "Resize to continue")
		return
	}

	if g.err != nil {
		drawCenteredMessage(dst, "LEVEL UNAVAILABLE", g.err.Error())
		return
	}

	view, ok := g.View()
	if !ok {
		return
	}

	DrawView(dst, view)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	switch view.State {
	case sim.StateGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", view.Score))
	case sim.StateLevelComplete:
		drawCenteredMessage(dst, "LEVEL CLEAR", fmt.Sprintf("Score: %d  |  R replay, Enter next", view.Score))
	}
}

// DrawView renders a world snapshot without any overlay.
func DrawView(dst *core.Screen, v sim.View) {
	vp := newViewport(v, dst)

	drawHUD(dst, v)

	for _, p := range v.Platforms {
		dst.DrawRectColored(vp.rect(p), PlatformChar, core.ColorGreen)
	}

	for _, b := range v.Bridges {
		drawBridge(dst, vp, b, v.Tick)
	}

	for _, f := range v.Fruits {
		r := vp.rect(f.Box)
		dst.SetColored(r.X, r.Y, FruitChar, core.ColorOrange)
	}

	for _, e := range v.Enemies {
		r := vp.rect(e.Box)
		glyph := enemyFrames[e.Frame%len(enemyFrames)]
		dst.DrawRectColored(r, glyph, core.ColorRed)
	}

	for _, d := range v.DeadEnemies {
		r := vp.rect(d.Box)
		frame := (int(d.Angle/90)%len(spinFrames) + len(spinFrames)) % len(spinFrames)
		dst.SetColored(r.X, r.Y, spinFrames[frame], core.ColorBrightRed)
	}

	if v.Trophy != nil {
		r := vp.rect(v.Trophy.Box)
		color := core.ColorYellow
		if (v.Trophy.Shine/10)%2 == 0 {
			color = core.ColorBrightYellow
		}
		dst.DrawRectColored(r, TrophyChar, color)
	}

	drawPlayer(dst, vp, v.Player)
}

// drawHUD draws the status line.
func drawHUD(dst *core.Screen, v sim.View) {
	status := "READY"
	if v.Player.Cooldown > 0 {
		status = "charging"
	}
	hud := fmt.Sprintf(" %s  Score: %d  Rainbow: %s", v.LevelName, v.Score, status)
	dst.DrawTextColored(0, HUDRow, hud, core.ColorBrightWhite)

	right := fmt.Sprintf("Enemies: %d ", len(v.Enemies))
	if v.Progressive {
		right = fmt.Sprintf("Diff: %d%%  %s", int(v.Difficulty*100), right)
	}
	dst.DrawTextColored(dst.Width()-len(right), HUDRow, right, core.ColorGray)
}

// drawPlayer fills the player box, blue facing right and cyan facing left,
// with the leading column marking the facing.
func drawPlayer(dst *core.Screen, vp viewport, p sim.PlayerView) {
	r := vp.rect(p.Box)
	color := core.ColorBlue
	eye := r.Right() - 1
	if p.Facing == sim.FacingLeft {
		color = core.ColorCyan
		eye = r.X
	}
	dst.DrawRectColored(r, PlayerChar, color)
	dst.SetColored(eye, r.Y, '▓', core.ColorBrightWhite)
}

// drawBridge draws an airborne rainbow as a single spark and a solid one as
// colored stripes following its hump.
func drawBridge(dst *core.Screen, vp viewport, b sim.BridgeView, tick int) {
	if b.Phase == sim.PhaseAirborne {
		r := vp.rect(b.Box)
		dst.SetColored(r.X, r.Y, ArcChar, BandColors[tick%len(BandColors)])
		return
	}

	glyph := '▄'
	switch {
	case b.Fade > 0.66:
		glyph = '░'
	case b.Fade > 0.33:
		glyph = '▒'
	}

	bands := core.Max(1, b.Bands)
	r := vp.rect(b.Box)
	for cx := r.X; cx < r.Right(); cx++ {
		worldX := (float64(cx) + 0.5) / vp.sx
		top := vp.row(b.SurfaceY(worldX))
		// One cell row per band when the terminal is tall enough, else one stripe
		// cycling through colors along the span.
		rows := core.Max(1, int(math.Round(b.Box.H*vp.sy)))
		for i := 0; i < rows; i++ {
			band := (i * bands) / rows
			if rows == 1 {
				band = (cx - r.X) % bands
			}
			dst.SetColored(cx, top+i, glyph, BandColors[band%len(BandColors)])
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Min(w, core.Max(len(title), len(subtitle))+4)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(core.Max(boxX+1, subtitleX), boxY+3, subtitle)
}
