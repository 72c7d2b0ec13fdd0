package sim

import (
	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// EnemyID identifies an enemy for the lifetime of a World.
type EnemyID int

// Enemy walks back and forth inside its patrol corridor.
type Enemy struct {
	ID         EnemyID
	X, Y       float64
	W, H       float64
	Start, End float64
	Direction  float64 // +1 or -1
	Speed      float64
	Frame      int // Animation frame index

	frameTicks    int
	frameDuration int
	frameCount    int
}

// NewEnemy creates an enemy from a spawn descriptor, walking right.
func NewEnemy(id EnemyID, spawn EnemySpawn, cfg config.EnemyConfig) *Enemy {
	return &Enemy{
		ID:            id,
		X:             spawn.X,
		Y:             spawn.Y,
		W:             cfg.Width,
		H:             cfg.Height,
		Start:         spawn.Start,
		End:           spawn.End,
		Direction:     1,
		Speed:         cfg.Speed,
		frameDuration: cfg.FrameDuration,
		frameCount:    cfg.AnimationCount,
	}
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() core.Box {
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Update moves the enemy one step along its patrol. Solid bridges act as
// walls: an enemy walking into one turns around.
func (e *Enemy) Update(bridges []*Bridge) {
	e.X += e.Speed * e.Direction

	if e.X <= e.Start {
		e.Direction = 1
	} else if e.X >= e.End-e.W {
		e.Direction = -1
	}

	box := e.Bounds()
	for _, b := range bridges {
		if b.Phase != PhaseSolid {
			continue
		}
		bb := b.Bounds()
		if !box.Intersects(bb) {
			continue
		}
		// Only turn while heading into the bridge, or it would flip every tick.
		if (bb.CenterX()-box.CenterX())*e.Direction > 0 {
			e.Direction = -e.Direction
		}
		break
	}

	e.frameTicks++
	if e.frameTicks >= e.frameDuration {
		e.frameTicks = 0
		e.Frame = (e.Frame + 1) % e.frameCount
	}
}
