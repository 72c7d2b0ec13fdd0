package sim

import (
	"math"

	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// View is a read-only snapshot of the world for renderers.
// Slices are freshly allocated and safe to keep.
type View struct {
	Tick      int
	LevelID   string
	LevelName string
	State     State
	Score     int
	ScreenW   float64
	ScreenH   float64

	Progressive bool    // Difficulty ramps with score or time
	Difficulty  float64 // Current difficulty level, 0.0 to 1.0

	Player      PlayerView
	Platforms   []core.Box
	Enemies     []EnemyView
	Bridges     []BridgeView
	DeadEnemies []DeadEnemyView
	Fruits      []FruitView
	Trophy      *TrophyView // Nil until the level is complete
}

// PlayerView is the drawable player pose.
type PlayerView struct {
	Box      core.Box
	Facing   Facing
	OnGround bool
	Cooldown int
}

// EnemyView is a drawable enemy.
type EnemyView struct {
	ID        EnemyID
	Box       core.Box
	Direction float64
	Frame     int
}

// BridgeView is a drawable bridge. Solid and dissolving bridges are drawn as
// Bands stripes following a half-sine hump of height Arc over Box.
type BridgeView struct {
	ID        BridgeID
	Phase     Phase
	Box       core.Box
	Direction Facing
	Fade      float64 // 0 = opaque, 1 = fully dissolved
	Arc       float64
	Bands     int
}

// DeadEnemyView is a drawable death animation.
type DeadEnemyView struct {
	Box   core.Box
	Angle float64
}

// FruitView is a drawable fruit. Bob is already included in Box.Y.
type FruitView struct {
	Box core.Box
	Bob float64
}

// TrophyView is the drawable trophy.
type TrophyView struct {
	Box   core.Box
	Shine int
}

// View snapshots the world.
func (w *World) View() View {
	v := View{
		Tick:      w.tick,
		LevelID:   w.manifest.ID,
		LevelName: w.manifest.Name,
		State:     w.state,
		Score:     w.score,
		ScreenW:   w.cfg.Screen.Width,
		ScreenH:   w.cfg.Screen.Height,

		Progressive: w.difficulty.IsEnabled(),
		Difficulty:  w.difficulty.Level(w.score, w.tick),

		Player: PlayerView{
			Box:      w.player.Bounds(),
			Facing:   w.player.Facing,
			OnGround: w.player.OnGround,
			Cooldown: w.player.Cooldown,
		},
	}

	v.Platforms = make([]core.Box, len(w.platforms))
	for i, p := range w.platforms {
		v.Platforms[i] = p.Bounds()
	}

	v.Enemies = make([]EnemyView, len(w.enemies))
	for i, e := range w.enemies {
		v.Enemies[i] = EnemyView{ID: e.ID, Box: e.Bounds(), Direction: e.Direction, Frame: e.Frame}
	}

	v.Bridges = make([]BridgeView, len(w.bridges))
	for i, b := range w.bridges {
		v.Bridges[i] = BridgeView{
			ID:        b.ID,
			Phase:     b.Phase,
			Box:       b.Bounds(),
			Direction: b.Direction,
			Fade:      b.Fade(),
			Arc:       w.cfg.Bridge.SurfaceAmplitude,
			Bands:     w.cfg.Bridge.Bands,
		}
	}

	v.DeadEnemies = make([]DeadEnemyView, len(w.deadEnemies))
	for i, d := range w.deadEnemies {
		v.DeadEnemies[i] = DeadEnemyView{Box: d.Bounds(), Angle: d.Angle}
	}

	v.Fruits = make([]FruitView, len(w.fruits))
	for i, f := range w.fruits {
		bob := f.Bob()
		v.Fruits[i] = FruitView{Box: f.Bounds().Translate(0, bob), Bob: bob}
	}

	if w.trophy != nil {
		v.Trophy = &TrophyView{Box: w.trophy.Bounds(), Shine: w.trophy.Shine}
	}

	return v
}

// SurfaceY returns the top of the bridge's hump at world x, for drawing.
func (b BridgeView) SurfaceY(x float64) float64 {
	progress := core.ClampF((x-b.Box.X)/b.Box.W, 0, 1)
	return b.Box.Y - b.Arc*math.Sin(progress*math.Pi)
}

// Hash returns a hash of the simulation-relevant parts of the view for
// determinism testing.
func (v View) Hash() uint64 {
	h := mix(0, v.Tick)
	h = mix(h, int(v.State))
	h = mix(h, v.Score)
	h = hashBox(h, v.Player.Box)
	h = mix(h, int(v.Player.Facing))
	h = mix(h, v.Player.Cooldown)

	for _, e := range v.Enemies {
		h = mix(h, int(e.ID))
		h = hashBox(h, e.Box)
		h = h*31 + math.Float64bits(e.Direction)
	}
	for _, b := range v.Bridges {
		h = mix(h, int(b.ID))
		h = mix(h, int(b.Phase))
		h = hashBox(h, b.Box)
	}
	for _, d := range v.DeadEnemies {
		h = hashBox(h, d.Box)
	}
	for _, f := range v.Fruits {
		h = hashBox(h, f.Box)
	}
	return h
}

// mix folds an int into the hash.
func mix(h uint64, v int) uint64 {
	return h*31 + uint64(v) //#nosec G115 -- hash computation
}

func hashBox(h uint64, b core.Box) uint64 {
	h = h*31 + math.Float64bits(b.X)
	h = h*31 + math.Float64bits(b.Y)
	h = h*31 + math.Float64bits(b.W)
	h = h*31 + math.Float64bits(b.H)
	return h
}
