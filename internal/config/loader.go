package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// LoadSwap loads the swap engine configuration.
// Search order: customPath -> ~/.swapgrid/configs/swap.yaml -> ./configs/swap.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadSwap(customPath string) (SwapConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SwapConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseSwap(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("swap.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseSwap(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "swap.yaml")); err == nil {
		if cfg, err := ParseSwap(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseSwap(defaultSwapYAML)
	if err != nil {
		return DefaultSwapConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSwap decodes YAML over the defaults and validates the result.
func ParseSwap(data []byte) (SwapConfig, error) {
	cfg := DefaultSwapConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with. A non-positive swap
// rate would leave an animation running forever.
func (c SwapConfig) Validate() error {
	rate := c.Animation.SwapRate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: animation.swap_rate must be positive, got %v", ErrInvalid, rate)
	}
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.BorderThickness < 0 {
		return fmt.Errorf("%w: grid.border_thickness must not be negative", ErrInvalid)
	}
	if n := len(c.Tile.Spacing); n != 0 && n != 2 {
		return fmt.Errorf("%w: tile.spacing needs 2 values, got %d", ErrInvalid, n)
	}
	if n := len(c.Tile.Bounds); n != 0 && n != 3 {
		return fmt.Errorf("%w: tile.bounds needs 3 values, got %d", ErrInvalid, n)
	}
	if n := len(c.Tile.Scale); n != 0 && n != 3 {
		return fmt.Errorf("%w: tile.scale needs 3 values, got %d", ErrInvalid, n)
	}
	for _, v := range append(append([]float64(nil), c.Tile.Spacing...), c.Tile.Bounds...) {
		if v < 0 {
			return fmt.Errorf("%w: tile sizes must not be negative", ErrInvalid)
		}
	}
	switch c.Selection.InvalidSecondPick {
	case "", "ignore", "clear":
	default:
		return fmt.Errorf("%w: selection.invalid_second_pick %q (want ignore or clear)", ErrInvalid, c.Selection.InvalidSecondPick)
	}
	if c.Camera.ColsPerUnit < 0 || c.Camera.RowsPerUnit < 0 {
		return fmt.Errorf("%w: camera scale must not be negative", ErrInvalid)
	}
	if c.Walker.Enabled && c.Walker.Speed <= 0 {
		return fmt.Errorf("%w: walker.speed must be positive", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".swapgrid", "configs", filename)
}
