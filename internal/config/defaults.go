package config

import (
	_ "embed"
)

//go:embed defaults/rainbow.yaml
var defaultRainbowYAML []byte

// DefaultRainbowConfig returns the default Rainbow Islands configuration.
// It mirrors defaults/rainbow.yaml and is used when the embedded file cannot be parsed.
func DefaultRainbowConfig() RainbowConfig {
	return RainbowConfig{
		Screen: ScreenConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			Width:         32,
			Height:        32,
			Speed:         5,
			JumpImpulse:   -12,
			Gravity:       0.5,
			ShootCooldown: 30,
			ShootOffset:   34,
		},
		Bridge: BridgeConfig{
			ProjectileSize:    8,
			ProjectileHitbox:  16,
			Speed:             0.8,
			ArcStep:           2,
			MaxArc:            25,
			ArcAmplitude:      50,
			Lifetime:          120,
			Width:             100,
			Height:            12,
			SurfaceAmplitude:  20,
			SurfaceTolerance:  10,
			SolidDuration:     300,
			DissolveDuration:  120,
			FallSpeed:         2,
			HardLandingSpeed:  5,
			UndersideRebound:  2,
			CollisionHalfSpan: 10,
			Bands:             7,
		},
		Enemy: EnemyConfig{
			Width:          24,
			Height:         24,
			Speed:          1,
			KillScore:      100,
			FrameDuration:  8,
			AnimationCount: 2,
		},
		DeadEnemy: DeadEnemyConfig{
			LaunchSpeed: -6,
			Gravity:     0.4,
			Spin:        15,
		},
		Fruit: FruitConfig{
			Size:         16,
			Score:        20,
			BobAmplitude: 3,
			BobPeriod:    60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 800,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				CooldownIncrease: 15,
			},
		},
	}
}
