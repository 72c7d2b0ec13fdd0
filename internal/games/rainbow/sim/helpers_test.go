package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/rainbow-arcade/internal/config"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func testConfig() config.RainbowConfig {
	return config.DefaultRainbowConfig()
}

// newTestWorld builds a world or fails the test.
func newTestWorld(t *testing.T, m LevelManifest) *World {
	t.Helper()
	w, err := NewWorld(testConfig(), m)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

// groundLevel is a flat floor with the player standing at x.
func groundLevel(playerX float64, enemies ...EnemySpawn) LevelManifest {
	return LevelManifest{
		ID:          "test",
		Name:        "Test",
		Platforms:   []Platform{{0, 580, 800, 20}},
		Enemies:     enemies,
		PlayerSpawn: Point{playerX, 548},
		Trophy:      Point{384, 100},
	}
}

// solidBridge returns a solid bridge with its top-left corner at (x, y).
func solidBridge(id BridgeID, x, y float64) *Bridge {
	cfg := testConfig().Bridge
	return &Bridge{
		ID:        id,
		X:         x,
		Y:         y,
		W:         cfg.Width,
		H:         cfg.Height,
		Direction: FacingRight,
		Phase:     PhaseSolid,
		cfg:       cfg,
	}
}
