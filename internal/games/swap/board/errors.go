package board

import "errors"

var (
	// ErrMissingTemplate is returned when construction has no tile template.
	ErrMissingTemplate = errors.New("board: tile template is not set")
	// ErrNoFootprint is returned when the tile template has no bounding volume
	// and no explicit spacing was configured.
	ErrNoFootprint = errors.New("board: tile template has no bounding volume")
	// ErrInvalidRate is returned for a non-positive swap animation rate.
	ErrInvalidRate = errors.New("board: swap rate must be positive")
	// ErrAnimating is returned when a swap is requested while another is in flight.
	ErrAnimating = errors.New("board: swap animation already running")
	// ErrNotSwappable is returned when a swap involves a non-swappable tile.
	ErrNotSwappable = errors.New("board: tile is not swappable")
	// ErrSameTile is returned when a tile is swapped with itself.
	ErrSameTile = errors.New("board: cannot swap a tile with itself")
	// ErrNoVisual is returned when a tile to animate has no scene node.
	ErrNoVisual = errors.New("board: tile has no visual")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")
)
