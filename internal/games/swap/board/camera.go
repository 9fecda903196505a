package board

import (
	"math"

	"github.com/vovakirdan/swapgrid/internal/core"
)

// Camera maps terminal cells to world coordinates. World Y points up,
// screen Y points down, and world origin sits at the screen center.
type Camera struct {
	ScreenW     int
	ScreenH     int
	ColsPerUnit float64 // Terminal columns per world unit
	RowsPerUnit float64 // Terminal rows per world unit
}

// NewCamera creates a camera for a screen of the given size.
func NewCamera(screenW, screenH int, colsPerUnit, rowsPerUnit float64) Camera {
	if colsPerUnit <= 0 {
		colsPerUnit = 8
	}
	if rowsPerUnit <= 0 {
		rowsPerUnit = 4
	}
	return Camera{
		ScreenW:     screenW,
		ScreenH:     screenH,
		ColsPerUnit: colsPerUnit,
		RowsPerUnit: rowsPerUnit,
	}
}

func (c Camera) center() (float64, float64) {
	return float64(c.ScreenW) / 2, float64(c.ScreenH) / 2
}

// ScreenToWorld returns the world point under the middle of screen cell (sx, sy).
func (c Camera) ScreenToWorld(sx, sy int) core.Vec2 {
	cx, cy := c.center()
	return core.V2(
		(float64(sx)+0.5-cx)/c.ColsPerUnit,
		(cy-(float64(sy)+0.5))/c.RowsPerUnit,
	)
}

// WorldToScreen returns the screen cell containing world point p.
func (c Camera) WorldToScreen(p core.Vec2) (int, int) {
	cx, cy := c.center()
	return int(math.Floor(p.X*c.ColsPerUnit + cx)), int(math.Floor(cy - p.Y*c.RowsPerUnit))
}

// Project returns the screen cells covered by a world box. A cell is covered
// when its center lies inside the box, which matches ScreenToWorld picking.
func (c Camera) Project(b core.Bounds) core.Rect {
	cx, cy := c.center()
	lo, hi := b.Min(), b.Max()
	x0 := int(math.Ceil(lo.X*c.ColsPerUnit + cx - 0.5))
	x1 := int(math.Ceil(hi.X*c.ColsPerUnit + cx - 0.5))
	y0 := int(math.Floor(cy - hi.Y*c.RowsPerUnit + 0.5))
	y1 := int(math.Floor(cy - lo.Y*c.RowsPerUnit + 0.5))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}
