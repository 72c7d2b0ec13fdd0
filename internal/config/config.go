// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "fmt"

// RainbowConfig contains all tuning for the Rainbow Islands simulation.
// Distances are in world pixels, durations in ticks.
type RainbowConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Player     PlayerConfig     `yaml:"player"`
	Bridge     BridgeConfig     `yaml:"bridge"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	DeadEnemy  DeadEnemyConfig  `yaml:"dead_enemy"`
	Fruit      FruitConfig      `yaml:"fruit"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ScreenConfig defines the world dimensions.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines player movement parameters.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	JumpImpulse   float64 `yaml:"jump_impulse"` // Negative: up is -Y
	Gravity       float64 `yaml:"gravity"`
	ShootCooldown int     `yaml:"shoot_cooldown"`
	ShootOffset   float64 `yaml:"shoot_offset"` // Horizontal gap between player and spawned rainbow
}

// BridgeConfig defines the rainbow projectile and bridge parameters.
type BridgeConfig struct {
	ProjectileSize    float64 `yaml:"projectile_size"`
	ProjectileHitbox  float64 `yaml:"projectile_hitbox"` // Side of the square kill box around a projectile
	Speed             float64 `yaml:"speed"`
	ArcStep           int     `yaml:"arc_step"`
	MaxArc            int     `yaml:"max_arc"`
	ArcAmplitude      float64 `yaml:"arc_amplitude"` // Height of the projectile flight arc
	Lifetime          int     `yaml:"lifetime"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	SurfaceAmplitude  float64 `yaml:"surface_amplitude"` // Hump height of a solid bridge
	SurfaceTolerance  float64 `yaml:"surface_tolerance"`
	SolidDuration     int     `yaml:"solid_duration"`
	DissolveDuration  int     `yaml:"dissolve_duration"`
	FallSpeed         float64 `yaml:"fall_speed"`
	HardLandingSpeed  float64 `yaml:"hard_landing_speed"`
	UndersideRebound  float64 `yaml:"underside_rebound"` // Downward speed after hitting a bridge from below
	CollisionHalfSpan float64 `yaml:"collision_half_span"`
	Bands             int     `yaml:"bands"`
}

// EnemyConfig defines patrolling enemy parameters.
type EnemyConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	KillScore      int     `yaml:"kill_score"`
	FrameDuration  int     `yaml:"frame_duration"` // Ticks per animation frame
	AnimationCount int     `yaml:"animation_frames"`
}

// DeadEnemyConfig defines the death animation.
type DeadEnemyConfig struct {
	LaunchSpeed float64 `yaml:"launch_speed"` // Negative: initial upward velocity
	Gravity     float64 `yaml:"gravity"`
	Spin        float64 `yaml:"spin"` // Degrees per tick
}

// FruitConfig defines collectible fruit parameters.
type FruitConfig struct {
	Size         float64 `yaml:"size"`
	Score        int     `yaml:"score"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobPeriod    int     `yaml:"bob_period"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to enemy speed at max difficulty
	CooldownIncrease int     `yaml:"cooldown_increase"` // Extra shoot cooldown ticks at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that every size, speed and duration is usable.
// A config that fails validation must not be used to build a world.
func (c RainbowConfig) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"screen.width", c.Screen.Width},
		{"screen.height", c.Screen.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.speed", c.Player.Speed},
		{"player.gravity", c.Player.Gravity},
		{"bridge.projectile_hitbox", c.Bridge.ProjectileHitbox},
		{"bridge.speed", c.Bridge.Speed},
		{"bridge.arc_step", float64(c.Bridge.ArcStep)},
		{"bridge.max_arc", float64(c.Bridge.MaxArc)},
		{"bridge.lifetime", float64(c.Bridge.Lifetime)},
		{"bridge.width", c.Bridge.Width},
		{"bridge.height", c.Bridge.Height},
		{"bridge.dissolve_duration", float64(c.Bridge.DissolveDuration)},
		{"bridge.collision_half_span", c.Bridge.CollisionHalfSpan},
		{"enemy.width", c.Enemy.Width},
		{"enemy.height", c.Enemy.Height},
		{"enemy.speed", c.Enemy.Speed},
		{"enemy.frame_duration", float64(c.Enemy.FrameDuration)},
		{"enemy.animation_frames", float64(c.Enemy.AnimationCount)},
		{"dead_enemy.gravity", c.DeadEnemy.Gravity},
		{"fruit.size", c.Fruit.Size},
		{"fruit.bob_period", float64(c.Fruit.BobPeriod)},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", p.name, p.value)
		}
	}

	if c.Player.JumpImpulse >= 0 {
		return fmt.Errorf("config: player.jump_impulse must be negative, got %v", c.Player.JumpImpulse)
	}
	if c.DeadEnemy.LaunchSpeed >= 0 {
		return fmt.Errorf("config: dead_enemy.launch_speed must be negative, got %v", c.DeadEnemy.LaunchSpeed)
	}
	if c.Player.Width >= c.Screen.Width {
		return fmt.Errorf("config: player.width %v does not fit screen.width %v", c.Player.Width, c.Screen.Width)
	}
	return nil
}
