package sim

import (
	"math"

	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// standingOnBridge reports whether the player's feet are on the arced
// surface of some solid bridge.
func (p *Player) standingOnBridge(bridges []*Bridge) bool {
	cx := p.CenterX()
	feet := p.Y + p.H
	for _, b := range bridges {
		surface, ok := b.SurfaceY(cx)
		if !ok {
			continue
		}
		if math.Abs(feet-surface) < p.bridge.SurfaceTolerance {
			return true
		}
	}
	return false
}

// resolvePlatforms lands the player on platforms hit from above and stops
// them against platforms entered from the side. Platforms entered from
// below are passed through.
func (p *Player) resolvePlatforms(platforms []Platform, prevX float64) {
	for _, plat := range platforms {
		box := plat.Bounds()
		if !p.Bounds().Intersects(box) {
			continue
		}

		switch {
		case p.VY > 0 && p.Y < box.Y:
			p.Y = box.Y - p.H
			p.VY = 0
			p.OnGround = true
		case p.VX > 0 && prevX+p.W <= box.X:
			p.X = box.X - p.W
			p.VX = 0
		case p.VX < 0 && prevX >= box.Right():
			p.X = box.Right()
			p.VX = 0
		}
	}
}

// resolveBridges handles contact with the first solid bridge under the
// player's centre. Only one bridge is resolved per tick.
func (p *Player) resolveBridges(bridges []*Bridge, prevY float64) Outcome {
	cx := p.CenterX()
	half := p.bridge.CollisionHalfSpan

	for _, b := range bridges {
		surface, ok := b.SurfaceY(cx)
		if !ok {
			continue
		}

		band := core.NewBox(cx-half, surface, 2*half, b.H)
		if !p.Bounds().Intersects(band) {
			continue
		}

		out := Outcome{Kind: OutcomeAlive}
		switch {
		case p.VY > 0 && p.Y < surface:
			if p.VY > p.bridge.HardLandingSpeed {
				out = Outcome{Kind: OutcomeLandedOnBridge, Bridge: b.ID}
			}
			p.Y = surface - p.H
			p.VY = 0
			p.OnGround = true
		case p.VY < 0 && prevY >= band.Bottom():
			p.Y = band.Bottom() + 2
			p.VY = p.bridge.UndersideRebound
			out = Outcome{Kind: OutcomeLandedOnBridge, Bridge: b.ID}
		case p.VX != 0:
			p.X -= p.VX
			p.VX = 0
		}
		return out
	}

	return Outcome{Kind: OutcomeAlive}
}

// overlapping returns the enemies whose boxes intersect box, in list order.
func overlapping(box core.Box, enemies []*Enemy, skip map[EnemyID]bool) []*Enemy {
	var hits []*Enemy
	for _, e := range enemies {
		if skip[e.ID] {
			continue
		}
		if box.Intersects(e.Bounds()) {
			hits = append(hits, e)
		}
	}
	return hits
}
