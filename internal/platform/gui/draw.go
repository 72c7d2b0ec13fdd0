package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/rainbow-arcade/internal/core"
	"github.com/vovakirdan/rainbow-arcade/internal/games/rainbow/sim"
)

// bandColors are the rainbow stripes from top to bottom.
var bandColors = []color.RGBA{
	colornames.Red,
	colornames.Orange,
	colornames.Yellow,
	colornames.Limegreen,
	colornames.Deepskyblue,
	colornames.Indigo,
	colornames.Violet,
}

var messageFace = ebtext.NewGoXFace(basicfont.Face7x13)

// Draw renders the current view.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Skyblue)

	if err := g.level.Err(); err != nil {
		drawMessage(screen, "LEVEL UNAVAILABLE", err.Error())
		return
	}

	v, ok := g.level.View()
	if !ok {
		return
	}

	for _, p := range v.Platforms {
		fillBox(screen, p, colornames.Forestgreen)
	}
	for _, b := range v.Bridges {
		drawBridge(screen, b, v.Tick)
	}
	for _, f := range v.Fruits {
		fillBox(screen, f.Box, colornames.Orange)
	}
	for _, e := range v.Enemies {
		c := colornames.Red
		if e.Frame%2 == 1 {
			c = colornames.Crimson
		}
		fillBox(screen, e.Box, c)
	}
	for _, d := range v.DeadEnemies {
		drawSpinning(screen, d)
	}
	if v.Trophy != nil {
		c := colornames.Gold
		if (v.Trophy.Shine/10)%2 == 0 {
			c = colornames.Yellow
		}
		fillBox(screen, v.Trophy.Box, c)
	}
	drawPlayer(screen, v.Player)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  Score: %d  Enemies: %d", v.LevelName, v.Score, len(v.Enemies)), 8, 4)

	switch {
	case g.level.State().Paused:
		drawMessage(screen, "PAUSED", "Press P to resume")
	case v.State == sim.StateGameOver:
		drawMessage(screen, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", v.Score))
	case v.State == sim.StateLevelComplete:
		drawMessage(screen, "LEVEL CLEAR", fmt.Sprintf("Score: %d  |  R replay, Enter next", v.Score))
	}
}

func fillBox(dst *ebiten.Image, b core.Box, c color.Color) {
	vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

// drawPlayer draws the player, blue facing right and cyan facing left,
// with an eye on the leading side.
func drawPlayer(dst *ebiten.Image, p sim.PlayerView) {
	body := colornames.Royalblue
	eyeX := p.Box.Right() - 10
	if p.Facing == sim.FacingLeft {
		body = colornames.Darkturquoise
		eyeX = p.Box.X + 4
	}
	fillBox(dst, p.Box, body)
	vector.FillRect(dst, float32(eyeX), float32(p.Box.Y+8), 6, 6, colornames.White, false)
}

// drawSpinning draws a dead enemy as the outline of its box rotated by its
// spin angle.
func drawSpinning(dst *ebiten.Image, d sim.DeadEnemyView) {
	cx, cy := d.Box.CenterX(), d.Box.CenterY()
	rad := d.Angle * math.Pi / 180
	r := d.Box.W / 2 * math.Sqrt2

	var xs, ys [4]float32
	for i := range xs {
		a := rad + float64(i)*math.Pi/2 + math.Pi/4
		xs[i] = float32(cx + r*math.Cos(a))
		ys[i] = float32(cy + r*math.Sin(a))
	}
	for i := range xs {
		j := (i + 1) % len(xs)
		vector.StrokeLine(dst, xs[i], ys[i], xs[j], ys[j], 4, colornames.Darkred, true)
	}
}

// drawBridge draws an airborne rainbow as a spark and a solid one as stripes
// following its hump, fading out while it dissolves.
func drawBridge(dst *ebiten.Image, b sim.BridgeView, tick int) {
	if b.Phase == sim.PhaseAirborne {
		c := bandColors[tick%len(bandColors)]
		fillBox(dst, b.Box, c)
		return
	}

	bands := max(1, b.Bands)
	stripe := b.Box.H / float64(bands)
	alpha := 1 - b.Fade

	const step = 4.0
	for i := 0; i < bands; i++ {
		c := fade(bandColors[i%len(bandColors)], alpha)
		offset := float64(i)*stripe + stripe/2
		for x := b.Box.X; x < b.Box.Right(); x += step {
			x2 := math.Min(x+step, b.Box.Right())
			y1 := b.SurfaceY(x) + offset
			y2 := b.SurfaceY(x2) + offset
			vector.StrokeLine(dst, float32(x), float32(y1), float32(x2), float32(y2), float32(stripe), c, true)
		}
	}
}

// fade scales a color's alpha, premultiplied as image/color expects.
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := core.ClampF(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// drawMessage draws a centered two-line panel.
func drawMessage(dst *ebiten.Image, title, subtitle string) {
	bounds := dst.Bounds()
	tw, th := ebtext.Measure(title, messageFace, 0)
	sw, _ := ebtext.Measure(subtitle, messageFace, 0)

	panelW := math.Max(tw, sw) + 40
	panelH := th*3 + 30
	px := (float64(bounds.Dx()) - panelW) / 2
	py := (float64(bounds.Dy()) - panelH) / 2

	vector.FillRect(dst, float32(px), float32(py), float32(panelW), float32(panelH), color.RGBA{A: 200}, false)
	vector.StrokeRect(dst, float32(px), float32(py), float32(panelW), float32(panelH), 2, colornames.White, false)

	drawText(dst, title, px+(panelW-tw)/2, py+15)
	drawText(dst, subtitle, px+(panelW-sw)/2, py+15+th*2)
}

func drawText(dst *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(dst, s, messageFace, op)
}
