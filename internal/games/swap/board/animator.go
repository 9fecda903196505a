package board

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swapgrid/internal/core"
)

// SwapAnimator moves two tiles' visuals toward each other's position over
// several ticks and commits the grid swap when progress reaches 1.
// Only one swap runs at a time.
type SwapAnimator struct {
	scene  Scene
	grid   *Grid
	rate   float64
	logger *log.Logger

	active   bool
	a, b     *Tile
	fromA    core.Vec3
	fromB    core.Vec3
	progress float64

	onComplete func(a, b *Tile)
}

// NewSwapAnimator creates an animator advancing progress by tickDelta*rate
// per tick. A non-positive rate would never finish and is rejected.
func NewSwapAnimator(sc Scene, grid *Grid, rate float64, logger *log.Logger) (*SwapAnimator, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SwapAnimator{scene: sc, grid: grid, rate: rate, logger: logger}, nil
}

// OnComplete registers the callback invoked synchronously after a swap is
// committed.
func (an *SwapAnimator) OnComplete(fn func(a, b *Tile)) {
	an.onComplete = fn
}

// Rate returns the progress gained per simulated second.
func (an *SwapAnimator) Rate() float64 {
	return an.rate
}

// Active reports whether a swap is in flight.
func (an *SwapAnimator) Active() bool {
	return an.active
}

// Progress returns the normalized progress of the current swap in [0, 1].
func (an *SwapAnimator) Progress() float64 {
	return an.progress
}

// Run starts swapping a and b. Their current world positions are captured
// as the interpolation endpoints.
func (an *SwapAnimator) Run(a, b *Tile) error {
	switch {
	case an.active:
		return ErrAnimating
	case a == nil || b == nil || a.node == nil || b.node == nil:
		return ErrNoVisual
	case a == b:
		return ErrSameTile
	case !a.swappable || !b.swappable:
		return ErrNotSwappable
	}

	an.a, an.b = a, b
	an.fromA = an.scene.WorldPosition(a.node)
	an.fromB = an.scene.WorldPosition(b.node)
	an.progress = 0
	an.active = true
	return nil
}

// Tick advances the swap by dt seconds. Returns true on the tick the swap
// completes.
func (an *SwapAnimator) Tick(dt float64) bool {
	if !an.active || dt <= 0 {
		return false
	}

	an.progress += dt * an.rate
	if an.progress < 1 {
		an.scene.SetWorldPosition(an.a.node, core.Lerp(an.fromA, an.fromB, an.progress))
		an.scene.SetWorldPosition(an.b.node, core.Lerp(an.fromB, an.fromA, an.progress))
		return false
	}

	an.finish()
	return true
}

// finish snaps both visuals to their targets and commits the swap.
func (an *SwapAnimator) finish() {
	a, b := an.a, an.b
	an.progress = 1
	an.scene.SetWorldPosition(a.node, an.fromB)
	an.scene.SetWorldPosition(b.node, an.fromA)

	posA, posB := a.Pos(), b.Pos()
	if err := an.grid.Swap(posA, posB); err != nil {
		// Tiles placed by the builder are always in bounds.
		an.logger.Error("swap commit failed", "a", posA, "b", posB, "error", err)
	} else {
		an.logger.Debug("swap committed", "a", posA, "b", posB)
	}

	an.active = false
	an.a, an.b = nil, nil
	if an.onComplete != nil {
		an.onComplete(a, b)
	}
}

// abort drops a running swap without committing it. Used only when the
// board's visuals are torn down.
func (an *SwapAnimator) abort() {
	an.active = false
	an.a, an.b = nil, nil
	an.progress = 0
}

// MaxTicks returns the upper bound on ticks a swap needs at the given
// tick delta.
func MaxTicks(dt, rate float64) int {
	if dt <= 0 || rate <= 0 {
		return math.MaxInt
	}
	return int(math.Ceil(1/(dt*rate))) + 1
}
