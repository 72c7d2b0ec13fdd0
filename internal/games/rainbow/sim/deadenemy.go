package sim

import (
	"math"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// DeadEnemy is the spinning hop an enemy makes after being killed.
// It always ends where it started vertically and then becomes a fruit.
type DeadEnemy struct {
	X, Y    float64
	W, H    float64
	VY      float64
	Angle   float64 // Degrees
	OriginY float64

	gravity float64
	spin    float64
}

// NewDeadEnemy starts the death animation at the enemy's last position.
func NewDeadEnemy(e *Enemy, cfg config.DeadEnemyConfig) *DeadEnemy {
	return &DeadEnemy{
		X:       e.X,
		Y:       e.Y,
		W:       e.W,
		H:       e.H,
		VY:      cfg.LaunchSpeed,
		OriginY: e.Y,
		gravity: cfg.Gravity,
		spin:    cfg.Spin,
	}
}

// Bounds returns the dead enemy's bounding box.
func (d *DeadEnemy) Bounds() core.Box {
	return core.NewBox(d.X, d.Y, d.W, d.H)
}

// Update advances the animation. It returns true on the tick the dead
// enemy lands back on its origin height.
func (d *DeadEnemy) Update() bool {
	d.VY += d.gravity
	d.Y += d.VY
	d.Angle = math.Mod(d.Angle+d.spin, 360)

	if d.VY > 0 && d.Y >= d.OriginY {
		d.Y = d.OriginY
		return true
	}
	return false
}
