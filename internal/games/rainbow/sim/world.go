// Package sim is the deterministic Rainbow Islands simulation: player
// physics, rainbow bridges, enemies and the per-tick world loop.
// It performs no I/O; frontends feed it Input and read back a View.
package sim

import (
	"github.com/vovakirdan/rainbow-arcade/internal/config"
)

// State is the overall world state.
type State int

const (
	StatePlaying State = iota
	StateGameOver
	StateLevelComplete
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	case StateLevelComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// World owns every entity of one level. It is not safe for concurrent use.
type World struct {
	cfg        config.RainbowConfig
	manifest   LevelManifest
	difficulty *config.DifficultyManager

	player      *Player
	platforms   []Platform
	bridges     []*Bridge
	enemies     []*Enemy
	deadEnemies []*DeadEnemy
	fruits      []*Fruit
	trophy      *Trophy

	score int
	state State
	tick  int

	nextBridgeID BridgeID
	events       []Event
}

// NewWorld builds a World for the manifest. Invalid manifests or configs
// return a *LevelError and no World.
func NewWorld(cfg config.RainbowConfig, manifest LevelManifest) (*World, error) {
	if err := manifest.Validate(cfg); err != nil {
		return nil, err
	}

	return newWorld(cfg, manifest), nil
}

func newWorld(cfg config.RainbowConfig, manifest LevelManifest) *World {
	w := &World{
		cfg:        cfg,
		manifest:   manifest,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		player:     NewPlayer(cfg, manifest.PlayerSpawn.X, manifest.PlayerSpawn.Y),
		platforms:  append([]Platform(nil), manifest.Platforms...),
		state:      StatePlaying,
	}
	w.enemies = make([]*Enemy, 0, len(manifest.Enemies))
	for i, spawn := range manifest.Enemies {
		w.enemies = append(w.enemies, NewEnemy(EnemyID(i+1), spawn, cfg.Enemy))
	}
	return w
}

// Reset returns a fresh World built from the same config and manifest.
func (w *World) Reset() *World {
	return newWorld(w.cfg, w.manifest)
}

// State returns the current world state.
func (w *World) State() State { return w.state }

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Ticks returns the number of ticks run so far.
func (w *World) Ticks() int { return w.tick }

// Manifest returns the level the world was built from.
func (w *World) Manifest() LevelManifest { return w.manifest }

// Config returns the tuning the world was built with.
func (w *World) Config() config.RainbowConfig { return w.cfg }

// Player returns the player. Callers must not keep it across a Reset.
func (w *World) Player() *Player { return w.player }

// Tick advances the world by one fixed step.
//
// Order per tick: shoot, player, projectile kills, bridges, falling-bridge
// kills, enemies, chain reaction, falling-bridge kills again, player vs
// enemies, dead enemies, fruits, fruit collection, level completion.
func (w *World) Tick(in Input) TickReport {
	w.events = nil
	w.tick++

	if w.state != StatePlaying {
		if w.trophy != nil {
			w.trophy.Update()
		}
		return w.report()
	}

	w.player.cooldownTicks = w.difficulty.Cooldown(w.cfg.Player.ShootCooldown, w.score, w.tick)
	if in.Shoot {
		if spawn, ok := w.player.ShootBridge(); ok {
			w.spawnBridge(spawn)
		}
	}

	out := w.player.Update(in, w.platforms, w.bridges)
	switch out.Kind {
	case OutcomeFell:
		w.state = StateGameOver
		w.emit(Event{Kind: EventPlayerFell, X: w.player.X, Y: w.player.Y})
		return w.report()
	case OutcomeLandedOnBridge:
		if b := w.bridge(out.Bridge); b != nil && b.Dissolve() {
			w.emit(Event{Kind: EventBridgeDissolving, Bridge: b.ID, Cause: CausePlayerLanding, X: b.X, Y: b.Y})
		}
	}

	w.resolveProjectileKills()
	w.updateBridges()
	w.resolveFallingBridgeKills()
	w.updateEnemies()
	w.resolveChainReaction()
	w.resolveFallingBridgeKills()

	if w.playerCaught() {
		w.state = StateGameOver
		w.emit(Event{Kind: EventPlayerCaught, X: w.player.X, Y: w.player.Y})
		return w.report()
	}

	w.updateDeadEnemies()
	for _, f := range w.fruits {
		f.Update()
	}
	w.collectFruits()
	w.checkLevelComplete()

	return w.report()
}

func (w *World) report() TickReport {
	return TickReport{State: w.state, Score: w.score, Events: w.events}
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	w.events = append(w.events, ev)
}

func (w *World) bridge(id BridgeID) *Bridge {
	for _, b := range w.bridges {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (w *World) spawnBridge(spawn BridgeSpawn) {
	w.nextBridgeID++
	b := NewBridge(w.nextBridgeID, spawn, w.cfg.Bridge)
	w.bridges = append(w.bridges, b)
	w.emit(Event{Kind: EventBridgeSpawned, Bridge: b.ID, X: b.X, Y: b.Y})
}

// resolveProjectileKills lets each airborne bridge kill at most one enemy.
// A projectile that kills is consumed.
func (w *World) resolveProjectileKills() {
	killed := make(map[EnemyID]bool)
	consumed := make(map[BridgeID]bool)

	for _, b := range w.bridges {
		if b.Phase != PhaseAirborne {
			continue
		}
		hits := overlapping(b.HitBox(), w.enemies, killed)
		if len(hits) == 0 {
			continue
		}
		e := hits[0]
		killed[e.ID] = true
		consumed[b.ID] = true
		w.killEnemy(e, CauseProjectile, b.ID)
	}

	if len(consumed) > 0 {
		kept := w.bridges[:0]
		for _, b := range w.bridges {
			if consumed[b.ID] {
				w.emit(Event{Kind: EventBridgeExpired, Bridge: b.ID, Cause: CauseProjectile, X: b.X, Y: b.Y})
				continue
			}
			kept = append(kept, b)
		}
		w.bridges = kept
	}
	w.removeEnemies(killed)
}

// resolveFallingBridgeKills kills every enemy touched by a dissolving bridge.
func (w *World) resolveFallingBridgeKills() {
	killed := make(map[EnemyID]bool)
	for _, b := range w.bridges {
		if b.Phase != PhaseDissolving {
			continue
		}
		for _, e := range overlapping(b.Bounds(), w.enemies, killed) {
			killed[e.ID] = true
			w.killEnemy(e, CauseFallingBridge, b.ID)
		}
	}
	w.removeEnemies(killed)
}

// killEnemy scores the kill and starts the death animation. The caller
// removes the enemy from the active list once iteration is done.
func (w *World) killEnemy(e *Enemy, cause KillCause, by BridgeID) {
	points := w.cfg.Enemy.KillScore
	w.score += points
	w.deadEnemies = append(w.deadEnemies, NewDeadEnemy(e, w.cfg.DeadEnemy))
	w.emit(Event{Kind: EventEnemyKilled, Enemy: e.ID, Bridge: by, Cause: cause, X: e.X, Y: e.Y, Points: points})
}

func (w *World) removeEnemies(ids map[EnemyID]bool) {
	if len(ids) == 0 {
		return
	}
	kept := w.enemies[:0]
	for _, e := range w.enemies {
		if !ids[e.ID] {
			kept = append(kept, e)
		}
	}
	w.enemies = kept
}

func (w *World) updateBridges() {
	kept := w.bridges[:0]
	for _, b := range w.bridges {
		before := b.Phase
		after := b.Update()
		if before == PhaseAirborne && after == PhaseSolid {
			w.emit(Event{Kind: EventBridgeSolidified, Bridge: b.ID, X: b.X, Y: b.Y})
		}
		if after == PhaseExpired {
			w.emit(Event{Kind: EventBridgeExpired, Bridge: b.ID, X: b.X, Y: b.Y})
			continue
		}
		kept = append(kept, b)
	}
	w.bridges = kept
}

func (w *World) updateEnemies() {
	speed := w.difficulty.Speed(w.cfg.Enemy.Speed, w.score, w.tick)
	for _, e := range w.enemies {
		e.Speed = speed
		e.Update(w.bridges)
	}
}

func (w *World) resolveChainReaction() {
	for _, b := range chainReaction(w.bridges) {
		w.emit(Event{Kind: EventBridgeDissolving, Bridge: b.ID, Cause: CauseChainReaction, X: b.X, Y: b.Y})
	}
}

func (w *World) playerCaught() bool {
	return len(overlapping(w.player.Bounds(), w.enemies, nil)) > 0
}

// updateDeadEnemies turns every finished death animation into a fruit.
func (w *World) updateDeadEnemies() {
	kept := w.deadEnemies[:0]
	for _, d := range w.deadEnemies {
		if !d.Update() {
			kept = append(kept, d)
			continue
		}
		f := NewFruit(d.X, d.Y, w.cfg.Fruit)
		w.fruits = append(w.fruits, f)
		w.emit(Event{Kind: EventFruitSpawned, X: f.X, Y: f.Y})
	}
	w.deadEnemies = kept
}

func (w *World) collectFruits() {
	box := w.player.Bounds()
	kept := w.fruits[:0]
	for _, f := range w.fruits {
		if !box.Intersects(f.Bounds()) {
			kept = append(kept, f)
			continue
		}
		f.Collected = true
		points := w.cfg.Fruit.Score
		w.score += points
		w.emit(Event{Kind: EventFruitCollected, X: f.X, Y: f.Y, Points: points})
	}
	w.fruits = kept
}

// checkLevelComplete clears the level once nothing is left to defeat or collect.
func (w *World) checkLevelComplete() {
	if len(w.enemies) > 0 || len(w.deadEnemies) > 0 || len(w.fruits) > 0 {
		return
	}
	w.state = StateLevelComplete
	w.trophy = &Trophy{X: w.manifest.Trophy.X, Y: w.manifest.Trophy.Y}
	w.emit(Event{Kind: EventLevelComplete, X: w.trophy.X, Y: w.trophy.Y})
}
