package sim

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBuiltinLevelsAreValid(t *testing.T) {
	cfg := testConfig()
	seen := make(map[string]bool)
	for _, m := range BuiltinLevels() {
		if seen[m.ID] {
			t.Errorf("duplicate level ID %q", m.ID)
		}
		seen[m.ID] = true
		if err := m.Validate(cfg); err != nil {
			t.Errorf("level %q invalid: %v", m.ID, err)
		}
		if len(m.Enemies) == 0 {
			t.Errorf("level %q has no enemies", m.ID)
		}
	}

	if _, ok := LevelByID("islands"); !ok {
		t.Error("classic level missing")
	}
	if _, ok := LevelByID("nowhere"); ok {
		t.Error("LevelByID found an unknown level")
	}
}

func TestNewWorldRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*LevelManifest)
		badCfg   bool
		wantCode string
	}{
		{
			name:     "zero width platform",
			mutate:   func(m *LevelManifest) { m.Platforms = append(m.Platforms, Platform{10, 10, 0, 20}) },
			wantCode: ErrEmptyPlatform,
		},
		{
			name:     "platform off screen",
			mutate:   func(m *LevelManifest) { m.Platforms = append(m.Platforms, Platform{700, 10, 200, 20}) },
			wantCode: ErrOutOfBounds,
		},
		{
			name:     "patrol narrower than enemy",
			mutate:   func(m *LevelManifest) { m.Enemies = []EnemySpawn{{100, 556, 100, 110}} },
			wantCode: ErrBadPatrol,
		},
		{
			name:     "enemy outside patrol",
			mutate:   func(m *LevelManifest) { m.Enemies = []EnemySpawn{{500, 556, 100, 300}} },
			wantCode: ErrBadPatrol,
		},
		{
			name:     "player spawn off screen",
			mutate:   func(m *LevelManifest) { m.PlayerSpawn = Point{790, 100} },
			wantCode: ErrOutOfBounds,
		},
		{
			name:     "invalid config",
			mutate:   func(m *LevelManifest) {},
			badCfg:   true,
			wantCode: ErrBadConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := groundLevel(100, EnemySpawn{650, 556, 600, 800})
			tt.mutate(&m)
			cfg := testConfig()
			if tt.badCfg {
				cfg.Bridge.Width = 0
			}

			w, err := NewWorld(cfg, m)
			if w != nil {
				t.Error("NewWorld returned a world alongside an error")
			}
			var lerr *LevelError
			if !errors.As(err, &lerr) {
				t.Fatalf("error = %v, want *LevelError", err)
			}
			if lerr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", lerr.Code, tt.wantCode)
			}
		})
	}
}

func TestEmptyWorldCompletesOnFirstTick(t *testing.T) {
	w := newTestWorld(t, groundLevel(100))
	if w.State() != StatePlaying {
		t.Fatalf("initial state = %v, want playing", w.State())
	}

	report := w.Tick(Input{})
	if report.State != StateLevelComplete {
		t.Fatalf("state after first tick = %v, want complete", report.State)
	}
	if report.Count(EventLevelComplete) != 1 {
		t.Errorf("level complete events = %d, want 1", report.Count(EventLevelComplete))
	}
	if v := w.View(); v.Trophy == nil {
		t.Error("no trophy after completion")
	}
}

func TestViewReportsDifficulty(t *testing.T) {
	if v := newTestWorld(t, groundLevel(100)).View(); v.Progressive || v.Difficulty != 0 {
		t.Errorf("default view difficulty = (%v, %v), want off at 0", v.Progressive, v.Difficulty)
	}

	cfg := testConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 0.3
	w, err := NewWorld(cfg, groundLevel(100))
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	v := w.View()
	if !v.Progressive || !approx(v.Difficulty, 0.3) {
		t.Errorf("view difficulty = (%v, %v), want on at 0.3", v.Progressive, v.Difficulty)
	}
}

func TestTickOutsidePlayingOnlyAdvancesClocks(t *testing.T) {
	w := newTestWorld(t, groundLevel(100))
	w.Tick(Input{})

	before := w.View()
	report := w.Tick(Input{MoveRight: true, Shoot: true, Jump: true})
	after := w.View()

	if len(report.Events) != 0 {
		t.Errorf("events after completion: %v", report.Events)
	}
	if after.Player != before.Player {
		t.Errorf("player moved after completion: %+v -> %+v", before.Player, after.Player)
	}
	if after.Tick != before.Tick+1 {
		t.Errorf("Tick = %d, want %d", after.Tick, before.Tick+1)
	}
	if after.Trophy.Shine != before.Trophy.Shine+1 {
		t.Errorf("Shine = %d, want %d", after.Trophy.Shine, before.Trophy.Shine+1)
	}
}

// killWorld has one enemy right in front of the player's rainbow and one
// patrolling far away so the level stays in play.
func killWorld(t *testing.T) *World {
	return newTestWorld(t, groundLevel(100,
		EnemySpawn{160, 556, 100, 400},
		EnemySpawn{700, 556, 600, 800},
	))
}

func TestProjectileKillsOneEnemyAndIsConsumed(t *testing.T) {
	w := killWorld(t)

	report := w.Tick(Input{Shoot: true})
	if report.Count(EventBridgeSpawned) != 1 {
		t.Fatalf("bridge spawned events = %d, want 1", report.Count(EventBridgeSpawned))
	}
	if report.Count(EventEnemyKilled) != 1 {
		t.Fatalf("kills = %d, want 1", report.Count(EventEnemyKilled))
	}
	for _, ev := range report.Events {
		if ev.Kind == EventEnemyKilled && (ev.Cause != CauseProjectile || ev.Enemy != 1) {
			t.Errorf("kill event = %+v, want enemy 1 by projectile", ev)
		}
	}
	if report.Score != 100 {
		t.Errorf("Score = %d, want 100", report.Score)
	}
	if len(w.bridges) != 0 {
		t.Errorf("projectile not consumed: %d bridges remain", len(w.bridges))
	}
	if len(w.enemies) != 1 || w.enemies[0].ID != 2 {
		t.Errorf("active enemies = %d, want only enemy 2", len(w.enemies))
	}
	if len(w.deadEnemies) != 1 {
		t.Errorf("dead enemies = %d, want 1", len(w.deadEnemies))
	}
}

func TestKilledEnemyBecomesFruitAndIsCollected(t *testing.T) {
	w := killWorld(t)

	report := w.Tick(Input{Shoot: true})
	var kill Event
	for _, ev := range report.Events {
		if ev.Kind == EventEnemyKilled {
			kill = ev
		}
	}

	var fruit Event
	for tick := 0; tick < 200 && fruit.Kind != EventFruitSpawned; tick++ {
		report = w.Tick(Input{})
		for _, e := range w.enemies {
			if e.ID == kill.Enemy {
				t.Fatalf("killed enemy %d is active again", e.ID)
			}
		}
		for _, ev := range report.Events {
			if ev.Kind == EventFruitSpawned {
				fruit = ev
			}
		}
	}
	if fruit.Kind != EventFruitSpawned {
		t.Fatal("dead enemy never turned into fruit")
	}
	if fruit.X != kill.X || fruit.Y != kill.Y {
		t.Errorf("fruit at (%v,%v), want the kill position (%v,%v)", fruit.X, fruit.Y, kill.X, kill.Y)
	}
	if len(w.deadEnemies) != 0 || len(w.fruits) != 1 {
		t.Fatalf("dead=%d fruits=%d, want 0 and 1", len(w.deadEnemies), len(w.fruits))
	}
	if w.State() != StatePlaying {
		t.Fatalf("state = %v while a fruit is uncollected", w.State())
	}

	collected := false
	for tick := 0; tick < 30 && !collected; tick++ {
		report = w.Tick(Input{MoveRight: true})
		collected = report.Has(EventFruitCollected)
	}
	if !collected {
		t.Fatal("fruit never collected")
	}
	if w.Score() != 120 {
		t.Errorf("Score = %d, want 120", w.Score())
	}
	if len(w.fruits) != 0 {
		t.Errorf("fruits = %d after collection", len(w.fruits))
	}
}

func TestLevelCompletesWhenLastFruitCollected(t *testing.T) {
	w := newTestWorld(t, groundLevel(100, EnemySpawn{160, 556, 100, 400}))

	w.Tick(Input{Shoot: true})
	for tick := 0; tick < 200 && len(w.fruits) == 0; tick++ {
		if r := w.Tick(Input{}); r.State != StatePlaying {
			t.Fatalf("state = %v while dead enemy animates", r.State)
		}
	}

	var report TickReport
	for tick := 0; tick < 30 && w.State() == StatePlaying; tick++ {
		report = w.Tick(Input{MoveRight: true})
	}
	if report.State != StateLevelComplete {
		t.Fatalf("state = %v, want complete", report.State)
	}
	if !report.Has(EventFruitCollected) || !report.Has(EventLevelComplete) {
		t.Errorf("completion tick events = %v, want collection and completion", report.Events)
	}
}

func TestPlayerCaughtByEnemy(t *testing.T) {
	w := newTestWorld(t, groundLevel(300, EnemySpawn{250, 556, 200, 500}))

	for tick := 0; tick < 60; tick++ {
		report := w.Tick(Input{})
		if report.State == StateGameOver {
			if !report.Has(EventPlayerCaught) {
				t.Errorf("game over without a caught event: %v", report.Events)
			}
			return
		}
	}
	t.Fatal("enemy walked through the player")
}

func TestPlayerFallGameOver(t *testing.T) {
	w := newTestWorld(t, LevelManifest{
		ID:          "pit",
		Platforms:   []Platform{{600, 580, 200, 20}},
		Enemies:     []EnemySpawn{{650, 556, 600, 800}},
		PlayerSpawn: Point{100, 100},
	})

	for tick := 0; tick < 200; tick++ {
		report := w.Tick(Input{})
		if report.State == StateGameOver {
			if !report.Has(EventPlayerFell) {
				t.Errorf("game over without a fall event: %v", report.Events)
			}
			return
		}
	}
	t.Fatal("player never fell out of the world")
}

func TestHardLandingDissolvesBridge(t *testing.T) {
	w := newTestWorld(t, groundLevel(100, EnemySpawn{700, 556, 600, 800}))
	b := solidBridge(50, 300, 400)
	w.bridges = append(w.bridges, b)
	w.player.X, w.player.Y, w.player.VY = 334, 340, 8

	report := w.Tick(Input{})
	if b.Phase != PhaseDissolving {
		t.Fatalf("bridge phase = %v, want dissolving", b.Phase)
	}
	found := false
	for _, ev := range report.Events {
		if ev.Kind == EventBridgeDissolving && ev.Bridge == b.ID && ev.Cause == CausePlayerLanding {
			found = true
		}
	}
	if !found {
		t.Errorf("no dissolve event from the landing: %v", report.Events)
	}
}

func TestFallingBridgeKillsEnemy(t *testing.T) {
	w := newTestWorld(t, groundLevel(100,
		EnemySpawn{400, 556, 380, 480},
		EnemySpawn{700, 556, 600, 800},
	))
	b := solidBridge(50, 360, 520)
	w.bridges = append(w.bridges, b)
	b.Dissolve()

	for tick := 0; tick < 60; tick++ {
		report := w.Tick(Input{})
		for _, ev := range report.Events {
			if ev.Kind == EventEnemyKilled {
				if ev.Cause != CauseFallingBridge || ev.Enemy != 1 {
					t.Fatalf("kill = %+v, want enemy 1 by falling bridge", ev)
				}
				return
			}
		}
	}
	t.Fatal("falling bridge never killed the enemy")
}

func TestChainReactionInWorld(t *testing.T) {
	w := newTestWorld(t, groundLevel(100, EnemySpawn{700, 556, 600, 800}))
	first := solidBridge(50, 300, 300)
	second := solidBridge(51, 340, 320)
	w.bridges = append(w.bridges, first, second)
	first.Dissolve()

	chained := 0
	for tick := 0; tick < 20; tick++ {
		report := w.Tick(Input{})
		for _, ev := range report.Events {
			if ev.Kind == EventBridgeDissolving && ev.Bridge == second.ID {
				if ev.Cause != CauseChainReaction {
					t.Errorf("cause = %v, want chain", ev.Cause)
				}
				chained++
			}
		}
	}
	if chained != 1 {
		t.Errorf("second bridge dissolved %d times, want 1", chained)
	}
	if second.Phase != PhaseDissolving {
		t.Errorf("second bridge phase = %v", second.Phase)
	}
}

func TestBridgeSolidifiesInWorld(t *testing.T) {
	w := newTestWorld(t, groundLevel(100, EnemySpawn{700, 556, 600, 800}))

	w.Tick(Input{Shoot: true})
	solidAt := 0
	for tick := 2; tick <= 20 && solidAt == 0; tick++ {
		if w.Tick(Input{}).Has(EventBridgeSolidified) {
			solidAt = tick
		}
	}
	// The bridge is spawned before the bridge update on tick 1.
	if solidAt != 13 {
		t.Errorf("bridge solidified on tick %d, want 13", solidAt)
	}
}

func randomInput(rng *rand.Rand) Input {
	return Input{
		MoveLeft:  rng.Intn(3) == 0,
		MoveRight: rng.Intn(3) == 0,
		Jump:      rng.Intn(8) == 0,
		Shoot:     rng.Intn(20) == 0,
	}
}

func TestPlayerStaysOnScreen(t *testing.T) {
	manifest, _ := LevelByID("islands")
	w := newTestWorld(t, manifest)
	rng := rand.New(rand.NewSource(42))
	maxX := w.cfg.Screen.Width - w.cfg.Player.Width

	for tick := 0; tick < 5000; tick++ {
		w.Tick(randomInput(rng))
		if x := w.player.X; x < 0 || x > maxX {
			t.Fatalf("tick %d: player X = %v outside [0, %v]", tick, x, maxX)
		}
		if w.State() != StatePlaying {
			w = w.Reset()
		}
	}
}

func TestKillsMatchDeadEnemiesAndFruits(t *testing.T) {
	for _, manifest := range BuiltinLevels() {
		t.Run(manifest.ID, func(t *testing.T) {
			w := newTestWorld(t, manifest)
			rng := rand.New(rand.NewSource(3))
			gone := make(map[EnemyID]bool)
			kills, fruits := 0, 0

			for tick := 0; tick < 3000 && w.State() == StatePlaying; tick++ {
				report := w.Tick(randomInput(rng))
				for _, ev := range report.Events {
					switch ev.Kind {
					case EventEnemyKilled:
						if gone[ev.Enemy] {
							t.Fatalf("enemy %d killed twice", ev.Enemy)
						}
						gone[ev.Enemy] = true
						kills++
					case EventFruitSpawned:
						fruits++
					}
				}
				for _, e := range w.enemies {
					if gone[e.ID] {
						t.Fatalf("tick %d: killed enemy %d is active", tick, e.ID)
					}
				}
				// Every kill is either still animating or has become exactly one fruit.
				if kills != fruits+len(w.deadEnemies) {
					t.Fatalf("tick %d: kills=%d fruits=%d animating=%d", tick, kills, fruits, len(w.deadEnemies))
				}
			}
		})
	}
}

func TestWorldDeterminism(t *testing.T) {
	manifest, _ := LevelByID("islands")

	run := func() uint64 {
		w := newTestWorld(t, manifest)
		rng := rand.New(rand.NewSource(12345))
		for range 1500 {
			w.Tick(randomInput(rng))
		}
		v := w.View()
		return v.Hash()
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("determinism failed: %d != %d", h1, h2)
	}
}

func TestWorldReset(t *testing.T) {
	manifest, _ := LevelByID("islands")
	w := newTestWorld(t, manifest)
	for range 50 {
		w.Tick(Input{MoveRight: true, Shoot: true})
	}

	fresh := w.Reset()
	if fresh == w {
		t.Fatal("Reset returned the same world")
	}
	if fresh.Ticks() != 0 || fresh.Score() != 0 || fresh.State() != StatePlaying {
		t.Errorf("fresh world: ticks=%d score=%d state=%v", fresh.Ticks(), fresh.Score(), fresh.State())
	}
	if len(fresh.enemies) != len(manifest.Enemies) {
		t.Errorf("fresh enemies = %d, want %d", len(fresh.enemies), len(manifest.Enemies))
	}
	if len(fresh.bridges) != 0 {
		t.Errorf("fresh world has %d bridges", len(fresh.bridges))
	}
	if fresh.player.X != manifest.PlayerSpawn.X || fresh.player.Y != manifest.PlayerSpawn.Y {
		t.Errorf("fresh player at (%v,%v)", fresh.player.X, fresh.player.Y)
	}
	if w.Ticks() != 50 {
		t.Errorf("old world ticks changed to %d", w.Ticks())
	}
}

func TestViewSnapshotsAreIndependent(t *testing.T) {
	manifest, _ := LevelByID("islands")
	w := newTestWorld(t, manifest)
	v := w.View()

	if len(v.Platforms) != len(manifest.Platforms) || len(v.Enemies) != len(manifest.Enemies) {
		t.Fatalf("view counts: platforms=%d enemies=%d", len(v.Platforms), len(v.Enemies))
	}
	v.Enemies[0].Box.X = -999
	if w.enemies[0].X == -999 {
		t.Error("view shares enemy state with the world")
	}
	if v.LevelID != "islands" || v.ScreenW != 800 {
		t.Errorf("view metadata = %q %v", v.LevelID, v.ScreenW)
	}
}
