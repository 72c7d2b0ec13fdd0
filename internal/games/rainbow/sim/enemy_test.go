package sim

import "testing"

func TestEnemyPatrolOscillation(t *testing.T) {
	cfg := testConfig().Enemy
	e := NewEnemy(1, EnemySpawn{X: 100, Y: 500, Start: 100, End: 300}, cfg)
	right := 300 - cfg.Width

	var turns []int
	lastDir := e.Direction
	for tick := 1; tick <= 2000; tick++ {
		e.Update(nil)

		if e.X < 100 || e.X > right {
			t.Fatalf("tick %d: X = %v outside [100, %v]", tick, e.X, right)
		}
		if e.X >= right && e.Direction != -1 {
			t.Fatalf("tick %d: at right bound X=%v but Direction=%v", tick, e.X, e.Direction)
		}
		if e.X <= 100 && e.Direction != 1 {
			t.Fatalf("tick %d: at left bound but Direction=%v", tick, e.Direction)
		}
		if e.Direction != lastDir {
			turns = append(turns, tick)
			lastDir = e.Direction
		}
	}

	// 176px each way at 1px per tick.
	if len(turns) < 4 {
		t.Fatalf("only %d turns in 2000 ticks", len(turns))
	}
	if turns[0] != 176 {
		t.Errorf("first turn at tick %d, want 176", turns[0])
	}
	for i := 1; i < len(turns); i++ {
		if turns[i]-turns[i-1] != 176 {
			t.Errorf("turn %d after %d ticks, want 176", i, turns[i]-turns[i-1])
		}
	}
}

func TestEnemyTurnsAtSolidBridge(t *testing.T) {
	cfg := testConfig().Enemy
	e := NewEnemy(1, EnemySpawn{X: 200, Y: 300, Start: 0, End: 800}, cfg)
	wall := solidBridge(1, 230, 305)

	for range 10 {
		e.Update([]*Bridge{wall})
	}
	if e.Direction != -1 {
		t.Fatalf("Direction = %v, want -1 after meeting the bridge", e.Direction)
	}
	if e.X+e.W > wall.X+1 {
		t.Errorf("enemy walked into the bridge: right edge %v", e.X+e.W)
	}

	// Walking away while still touching must not flip it back.
	for range 5 {
		e.Update([]*Bridge{wall})
		if e.Direction != -1 {
			t.Fatalf("enemy flipped back towards the bridge at X=%v", e.X)
		}
	}
}

func TestEnemyIgnoresNonSolidBridges(t *testing.T) {
	cfg := testConfig().Enemy
	e := NewEnemy(1, EnemySpawn{X: 200, Y: 300, Start: 0, End: 800}, cfg)
	falling := solidBridge(1, 230, 305)
	falling.Phase = PhaseDissolving

	for range 10 {
		e.Update([]*Bridge{falling})
	}
	if e.Direction != 1 {
		t.Errorf("Direction = %v, want 1", e.Direction)
	}
}

func TestEnemyAnimationFrames(t *testing.T) {
	cfg := testConfig().Enemy
	e := NewEnemy(1, EnemySpawn{X: 100, Y: 300, Start: 0, End: 800}, cfg)

	seen := make(map[int]bool)
	for range cfg.FrameDuration * cfg.AnimationCount * 2 {
		e.Update(nil)
		if e.Frame < 0 || e.Frame >= cfg.AnimationCount {
			t.Fatalf("Frame = %d out of range", e.Frame)
		}
		seen[e.Frame] = true
	}
	if len(seen) != cfg.AnimationCount {
		t.Errorf("saw %d frames, want %d", len(seen), cfg.AnimationCount)
	}
}

func TestDeadEnemyReturnsToOrigin(t *testing.T) {
	cfg := testConfig()
	e := NewEnemy(1, EnemySpawn{X: 160, Y: 300, Start: 0, End: 800}, cfg.Enemy)
	d := NewDeadEnemy(e, cfg.DeadEnemy)

	minY := d.Y
	ticks := 0
	for !d.Update() {
		ticks++
		if d.Y < minY {
			minY = d.Y
		}
		if ticks > 200 {
			t.Fatal("death animation never finished")
		}
	}
	if minY >= 300 {
		t.Errorf("dead enemy never rose, min Y = %v", minY)
	}
	if d.Y != 300 || d.X != 160 {
		t.Errorf("final position = (%v,%v), want (160,300)", d.X, d.Y)
	}
	if d.Angle == 0 {
		t.Error("dead enemy did not spin")
	}
}

func TestFruitBobIsCosmetic(t *testing.T) {
	f := NewFruit(100, 200, testConfig().Fruit)
	if f.Bob() != 0 {
		t.Errorf("Bob() at spawn = %v, want 0", f.Bob())
	}

	before := f.Bounds()
	for range 15 {
		f.Update()
	}
	if f.Bob() <= 0 {
		t.Errorf("Bob() after a quarter period = %v, want > 0", f.Bob())
	}
	if f.Bounds() != before {
		t.Errorf("Bounds changed with bob: %+v -> %+v", before, f.Bounds())
	}
}
