package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, the database and logs.
const AppDir = ".goldenduck"

// LoadDuck loads Flappy Duck configuration.
// Search order: customPath -> ~/.goldenduck/configs/duck.yaml -> ./configs/duck.yaml -> embedded default
func LoadDuck(customPath string) (DuckConfig, error) {
	var cfg DuckConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err = parseDuck(data)
		if err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "duck.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseDuck(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "duck.yaml")); err == nil {
		if cfg, err := parseDuck(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseDuck(defaultDuckYAML)
	if err != nil {
		return DefaultDuckConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseDuck decodes YAML over the hardcoded defaults so partial files work.
func parseDuck(data []byte) (DuckConfig, error) {
	cfg := DefaultDuckConfig()
	// Slices are replaced, not merged, so clear them before decoding.
	defaults := cfg.Obstacles.Gap
	cfg.Obstacles.Gap.Order = nil
	cfg.Obstacles.Gap.TierSteps = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Obstacles.Gap.Order == nil {
		cfg.Obstacles.Gap.Order = defaults.Order
	}
	if cfg.Obstacles.Gap.TierSteps == nil {
		cfg.Obstacles.Gap.TierSteps = defaults.TierSteps
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c DuckConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	case c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height:
		return fmt.Errorf("ground_height %g out of range", c.World.GroundHeight)
	case c.Obstacles.Gap.Min <= 0 || c.Obstacles.Gap.Min > c.Obstacles.Gap.Initial:
		return fmt.Errorf("gap min %g must be in (0, initial=%g]", c.Obstacles.Gap.Min, c.Obstacles.Gap.Initial)
	case c.Obstacles.SpawnInterval <= 0:
		return fmt.Errorf("spawn_interval must be positive, got %g", c.Obstacles.SpawnInterval)
	case c.Items.Cap <= 0:
		return fmt.Errorf("items cap must be positive, got %d", c.Items.Cap)
	case c.Items.RandomMaxDX < c.Items.RandomMinDX:
		return fmt.Errorf("random_max_dx %g below random_min_dx %g", c.Items.RandomMaxDX, c.Items.RandomMinDX)
	}
	return nil
}

// UserPath joins elems under ~/.goldenduck, or returns empty if home is unavailable.
func UserPath(elems ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elems...)...)
}
