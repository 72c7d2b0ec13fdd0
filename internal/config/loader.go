package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the user and local config directories.
const ConfigFile = "rainbow.yaml"

// LoadRainbow loads Rainbow Islands configuration.
// Search order: customPath -> ~/.arcade/configs/rainbow.yaml -> ./configs/rainbow.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. The result is validated before it is returned.
func LoadRainbow(customPath string) (RainbowConfig, error) {
	cfg, err := loadRainbow(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadRainbow(customPath string) (RainbowConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRainbowConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRainbow(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRainbow(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := ParseRainbow(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRainbow(defaultRainbowYAML)
	if err != nil {
		return DefaultRainbowConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Source reports which file LoadRainbow would read for customPath, or ""
// when only the embedded defaults apply.
func Source(customPath string) string {
	if customPath != "" {
		return customPath
	}
	candidates := []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ParseRainbow decodes YAML over the hardcoded defaults.
func ParseRainbow(data []byte) (RainbowConfig, error) {
	cfg := DefaultRainbowConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultRainbowConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyRainbowPreset modifies the config based on a difficulty preset.
func ApplyRainbowPreset(cfg *RainbowConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Bridge.SolidDuration = 420
		cfg.Player.ShootCooldown = 20
	case DifficultyHard:
		cfg.Bridge.SolidDuration = 200
		cfg.Enemy.Speed = 1.5
	}
}
