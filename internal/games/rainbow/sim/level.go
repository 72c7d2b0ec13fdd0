package sim

import (
	"fmt"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
	"github.com/vovakirdan/rainbow-arcade/internal/core"
)

// Platform is a static rectangle the player can stand on.
type Platform struct {
	X, Y, W, H float64
}

// Bounds returns the platform's bounding box.
func (p Platform) Bounds() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// EnemySpawn places an enemy and its patrol corridor [Start, End].
type EnemySpawn struct {
	X, Y       float64
	Start, End float64
}

// Point is a world position.
type Point struct {
	X, Y float64
}

// LevelManifest is the fixed layout a World is built from.
type LevelManifest struct {
	ID          string
	Name        string
	Platforms   []Platform
	Enemies     []EnemySpawn
	PlayerSpawn Point
	Trophy      Point // Where the trophy appears once the level is cleared
}

// Level error codes.
const (
	ErrEmptyPlatform = "EMPTY_PLATFORM"
	ErrBadPatrol     = "BAD_PATROL"
	ErrOutOfBounds   = "OUT_OF_BOUNDS"
	ErrBadConfig     = "BAD_CONFIG"
)

// LevelError reports a manifest or config that cannot be turned into a World.
type LevelError struct {
	Code    string
	Message string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the manifest against the world dimensions and entity sizes in cfg.
func (m LevelManifest) Validate(cfg config.RainbowConfig) error {
	if err := cfg.Validate(); err != nil {
		return &LevelError{Code: ErrBadConfig, Message: err.Error()}
	}

	screen := core.NewBox(0, 0, cfg.Screen.Width, cfg.Screen.Height)

	for i, p := range m.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return &LevelError{
				Code:    ErrEmptyPlatform,
				Message: fmt.Sprintf("level %q: platform %d has size %vx%v", m.ID, i, p.W, p.H),
			}
		}
		if !contains(screen, p.Bounds()) {
			return &LevelError{
				Code:    ErrOutOfBounds,
				Message: fmt.Sprintf("level %q: platform %d at (%v,%v) leaves the screen", m.ID, i, p.X, p.Y),
			}
		}
	}

	for i, e := range m.Enemies {
		if e.End-e.Start < cfg.Enemy.Width {
			return &LevelError{
				Code:    ErrBadPatrol,
				Message: fmt.Sprintf("level %q: enemy %d patrol [%v,%v] is narrower than the enemy", m.ID, i, e.Start, e.End),
			}
		}
		if !core.InRange(e.X, e.Start, e.End-cfg.Enemy.Width) {
			return &LevelError{
				Code:    ErrBadPatrol,
				Message: fmt.Sprintf("level %q: enemy %d at x=%v is outside its patrol [%v,%v]", m.ID, i, e.X, e.Start, e.End),
			}
		}
		if !contains(screen, core.NewBox(e.X, e.Y, cfg.Enemy.Width, cfg.Enemy.Height)) {
			return &LevelError{
				Code:    ErrOutOfBounds,
				Message: fmt.Sprintf("level %q: enemy %d at (%v,%v) leaves the screen", m.ID, i, e.X, e.Y),
			}
		}
	}

	spawn := core.NewBox(m.PlayerSpawn.X, m.PlayerSpawn.Y, cfg.Player.Width, cfg.Player.Height)
	if !contains(screen, spawn) {
		return &LevelError{
			Code:    ErrOutOfBounds,
			Message: fmt.Sprintf("level %q: player spawn (%v,%v) leaves the screen", m.ID, m.PlayerSpawn.X, m.PlayerSpawn.Y),
		}
	}

	return nil
}

// contains reports whether inner lies entirely within outer.
func contains(outer, inner core.Box) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}

// BuiltinLevels returns the levels shipped with the game, in play order.
func BuiltinLevels() []LevelManifest {
	return []LevelManifest{
		islandsLevel(),
		towerLevel(),
		cascadeLevel(),
	}
}

// LevelByID looks up a builtin level.
func LevelByID(id string) (LevelManifest, bool) {
	for _, m := range BuiltinLevels() {
		if m.ID == id {
			return m, true
		}
	}
	return LevelManifest{}, false
}

// islandsLevel is the classic three-tier layout.
func islandsLevel() LevelManifest {
	return LevelManifest{
		ID:   "islands",
		Name: "Rainbow Islands",
		Platforms: []Platform{
			// Ground
			{0, 580, 180, 20},
			{320, 580, 160, 20},
			{620, 580, 180, 20},
			// Middle
			{0, 380, 220, 20},
			{400, 330, 140, 20},
			{580, 280, 220, 20},
			{80, 250, 160, 20},
			// Top
			{0, 120, 350, 20},
			{450, 100, 350, 20},
			{0, 40, 800, 20},
		},
		Enemies: []EnemySpawn{
			{650, 556, 620, 800},
			{100, 356, 0, 220},
			{650, 256, 580, 800},
			{120, 226, 80, 240},
			{200, 96, 0, 350},
			{600, 76, 450, 800},
			{150, 16, 0, 800},
			{650, 16, 0, 800},
		},
		PlayerSpawn: Point{100, 500},
		Trophy:      Point{384, 8},
	}
}

func towerLevel() LevelManifest {
	return LevelManifest{
		ID:   "tower",
		Name: "Cloud Tower",
		Platforms: []Platform{
			{0, 580, 800, 20},
			{300, 500, 200, 20},
			{100, 420, 200, 20},
			{500, 420, 200, 20},
			{300, 340, 200, 20},
			{100, 260, 200, 20},
			{500, 260, 200, 20},
			{300, 180, 200, 20},
			{0, 100, 800, 20},
		},
		Enemies: []EnemySpawn{
			{350, 476, 300, 500},
			{150, 396, 100, 300},
			{550, 396, 500, 700},
			{350, 316, 300, 500},
			{150, 236, 100, 300},
			{600, 236, 500, 700},
			{400, 76, 0, 800},
		},
		PlayerSpawn: Point{380, 540},
		Trophy:      Point{384, 68},
	}
}

func cascadeLevel() LevelManifest {
	return LevelManifest{
		ID:   "cascade",
		Name: "Cascade Falls",
		Platforms: []Platform{
			{0, 580, 260, 20},
			{540, 580, 260, 20},
			{180, 470, 160, 20},
			{460, 470, 160, 20},
			{0, 360, 200, 20},
			{600, 360, 200, 20},
			{300, 300, 200, 20},
			{100, 200, 180, 20},
			{520, 200, 180, 20},
			{250, 90, 300, 20},
		},
		Enemies: []EnemySpawn{
			{60, 556, 0, 260},
			{600, 556, 540, 800},
			{200, 446, 180, 340},
			{500, 446, 460, 620},
			{50, 336, 0, 200},
			{650, 336, 600, 800},
			{380, 276, 300, 500},
			{150, 176, 100, 280},
			{600, 176, 520, 700},
			{350, 66, 250, 550},
		},
		PlayerSpawn: Point{100, 540},
		Trophy:      Point{384, 58},
	}
}
