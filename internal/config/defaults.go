package config

import (
	_ "embed"
)

//go:embed defaults/swap.yaml
var defaultSwapYAML []byte

// DefaultSwapConfig returns the default swap board configuration.
func DefaultSwapConfig() SwapConfig {
	return SwapConfig{
		Grid: GridConfig{
			Width:           4,
			Height:          4,
			BorderThickness: 0.25,
			DrawBorders:     true,
		},
		Tile: TileConfig{
			Bounds: []float64{1, 1, 1},
		},
		Animation: AnimationConfig{
			SwapRate: 3,
		},
		Selection: SelectionConfig{
			InvalidSecondPick: "ignore",
		},
		Camera: CameraConfig{
			ColsPerUnit: 8,
			RowsPerUnit: 4,
		},
		Walker: WalkerConfig{
			Enabled:       false,
			Speed:         1.5,
			ProbeDistance: 0.6,
		},
	}
}
