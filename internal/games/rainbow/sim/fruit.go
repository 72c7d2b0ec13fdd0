package sim

import (
	"math"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// Fruit is a collectible left behind by a defeated enemy.
type Fruit struct {
	X, Y      float64
	W, H      float64
	Collected bool
	Age       int // Ticks since spawn, drives the bob

	bobAmplitude float64
	bobPeriod    int
}

// NewFruit places a fruit at (x, y).
func NewFruit(x, y float64, cfg config.FruitConfig) *Fruit {
	return &Fruit{
		X:            x,
		Y:            y,
		W:            cfg.Size,
		H:            cfg.Size,
		bobAmplitude: cfg.BobAmplitude,
		bobPeriod:    cfg.BobPeriod,
	}
}

// Bounds returns the collision box. The bob offset is not applied.
func (f *Fruit) Bounds() core.Box {
	return core.NewBox(f.X, f.Y, f.W, f.H)
}

// Update advances the bob clock.
func (f *Fruit) Update() {
	f.Age++
}

// Bob returns the cosmetic vertical offset for drawing.
func (f *Fruit) Bob() float64 {
	phase := 2 * math.Pi * float64(f.Age%f.bobPeriod) / float64(f.bobPeriod)
	return f.bobAmplitude * math.Sin(phase)
}
