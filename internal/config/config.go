// Package config provides YAML-based engine configuration loading for the
// swap board.
package config

import (
	"github.com/vovakirdan/swapgrid/internal/core"
)

// SwapConfig contains all configuration for the swap board engine.
type SwapConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Tile      TileConfig      `yaml:"tile"`
	Animation AnimationConfig `yaml:"animation"`
	Selection SelectionConfig `yaml:"selection"`
	Camera    CameraConfig    `yaml:"camera"`
	Walker    WalkerConfig    `yaml:"walker"`
}

// GridConfig defines board dimensions and separators.
type GridConfig struct {
	// Width and Height size boards that carry no layout.
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	BorderThickness float64 `yaml:"border_thickness"`
	DrawBorders     bool    `yaml:"draw_borders"`
}

// TileConfig defines the tile template footprint.
// Spacing, when set, overrides Bounds×Scale.
type TileConfig struct {
	Spacing []float64 `yaml:"spacing,omitempty"` // [x, y]
	Bounds  []float64 `yaml:"bounds"`            // [x, y, z]
	Scale   []float64 `yaml:"scale,omitempty"`   // [x, y, z]
}

// AnimationConfig defines swap animation parameters.
type AnimationConfig struct {
	SwapRate float64 `yaml:"swap_rate"` // Progress per second; 1/rate seconds per swap
}

// SelectionConfig defines selection behaviour.
type SelectionConfig struct {
	InvalidSecondPick string `yaml:"invalid_second_pick"` // "ignore" or "clear"
}

// CameraConfig defines how world units map onto terminal cells.
type CameraConfig struct {
	ColsPerUnit float64 `yaml:"cols_per_unit"`
	RowsPerUnit float64 `yaml:"rows_per_unit"`
}

// WalkerConfig defines the cosmetic walker.
type WalkerConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Speed         float64 `yaml:"speed"`          // World units per second
	ProbeDistance float64 `yaml:"probe_distance"` // Look-ahead for wall checks
	StartX        int     `yaml:"start_x"`
	StartY        int     `yaml:"start_y"`
}

// SpacingVec returns the configured spacing override, or zero when unset.
func (t TileConfig) SpacingVec() core.Vec2 {
	if len(t.Spacing) < 2 {
		return core.Vec2{}
	}
	return core.V2(t.Spacing[0], t.Spacing[1])
}

// BoundsVec returns the tile template bounds.
func (t TileConfig) BoundsVec() core.Vec3 {
	return vec3(t.Bounds)
}

// ScaleVec returns the tile template scale, or zero (meaning 1,1,1) when unset.
func (t TileConfig) ScaleVec() core.Vec3 {
	return vec3(t.Scale)
}

func vec3(v []float64) core.Vec3 {
	if len(v) < 3 {
		return core.Vec3{}
	}
	return core.V3(v[0], v[1], v[2])
}
