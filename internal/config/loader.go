package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBreakout loads breakout configuration.
// Search order: customPath -> ~/.breakout/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
//
// Each file is decoded over the hard-coded defaults, so a partial file only
// overrides the keys it names. A custom path must exist and be valid; the
// other sources are skipped silently when missing or broken.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "breakout.yaml")); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a config document over the defaults and validates it.
func Parse(data []byte) (BreakoutConfig, error) {
	return decode(data)
}

// Marshal encodes cfg in the format Parse reads.
func Marshal(cfg BreakoutConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// decode parses YAML over the defaults and validates the result.
func decode(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakout", "configs", filename)
}
