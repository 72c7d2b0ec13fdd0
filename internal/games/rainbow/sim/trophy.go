package sim

import "github.com/vovakirdan/rainbow-arcade/internal/core"

// trophySize is the trophy's side length in pixels.
const trophySize = 32

// Trophy marks a cleared level. It is purely decorative.
type Trophy struct {
	X, Y  float64
	Shine int
}

// Bounds returns the trophy's bounding box.
func (t *Trophy) Bounds() core.Box {
	return core.NewBox(t.X, t.Y, trophySize, trophySize)
}

// Update advances the shine animation.
func (t *Trophy) Update() {
	t.Shine++
}
