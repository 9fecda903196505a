package board

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/swapgrid/internal/core"
)

// Grid is the authoritative board: a W×H array of tile slots plus the
// spacing used for every coordinate to world conversion.
// Slots are stored in row-major order: index = y*W + x. A slot may be nil.
type Grid struct {
	W       int
	H       int
	cells   []*Tile
	spacing core.Vec2
	base    core.Vec3
}

// NewGrid creates an empty grid centered on base.
func NewGrid(w, h int, spacing core.Vec2, base core.Vec3) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:       w,
		H:       h,
		cells:   make([]*Tile, w*h),
		spacing: spacing,
		base:    base,
	}
}

// CellSpacing returns the distance between neighbouring cell centers.
// The border thickness is added only when borders are drawn.
func CellSpacing(footprint core.Vec2, borderThickness float64, drawBorders bool) core.Vec2 {
	if !drawBorders || borderThickness <= 0 {
		return footprint
	}
	return footprint.Add(core.V2(borderThickness, borderThickness))
}

// Spacing returns the cell spacing.
func (g *Grid) Spacing() core.Vec2 {
	return g.spacing
}

// Base returns the world position the board is centered on.
func (g *Grid) Base() core.Vec3 {
	return g.base
}

func (g *Grid) index(x, y int) int {
	return y*g.W + x
}

// InBounds returns true if (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the tile at (x, y), or nil for empty slots and out-of-bounds
// coordinates.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[g.index(x, y)]
}

// Place puts t into its own slot. Construction only.
func (g *Grid) Place(t *Tile) error {
	if !g.InBounds(t.x, t.y) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, t.Pos())
	}
	i := g.index(t.x, t.y)
	if g.cells[i] != nil {
		return fmt.Errorf("board: slot %s already occupied", t.Pos())
	}
	g.cells[i] = t
	return nil
}

// centering returns the offset that puts the board's middle on base.
func (g *Grid) centering() core.Vec2 {
	return core.V2(
		-float64(g.W-1)*g.spacing.X/2,
		-float64(g.H-1)*g.spacing.Y/2,
	)
}

// CellToWorld returns the world position of cell (x, y).
func (g *Grid) CellToWorld(x, y int) core.Vec3 {
	p := core.V2(float64(x), float64(y)).Mul(g.spacing).Add(g.centering())
	return g.base.Add(p.Vec3(0))
}

// WorldToCell returns the cell whose spacing box contains p.
func (g *Grid) WorldToCell(p core.Vec2) (Coord, bool) {
	if g.spacing.X <= 0 || g.spacing.Y <= 0 {
		return Coord{}, false
	}
	rel := p.Sub(g.base.XY()).Sub(g.centering()).Div(g.spacing)
	x := int(math.Floor(rel.X + 0.5))
	y := int(math.Floor(rel.Y + 0.5))
	if !g.InBounds(x, y) {
		return Coord{}, false
	}
	return C(x, y), true
}

// Swap exchanges the occupants of a and b and updates each tile's stored
// coordinates. It is the only mutator of slots after construction.
func (g *Grid) Swap(a, b Coord) error {
	if !g.InBounds(a.X, a.Y) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, a)
	}
	if !g.InBounds(b.X, b.Y) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, b)
	}
	ia, ib := g.index(a.X, a.Y), g.index(b.X, b.Y)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
	if t := g.cells[ia]; t != nil {
		t.setPosition(a.X, a.Y)
	}
	if t := g.cells[ib]; t != nil {
		t.setPosition(b.X, b.Y)
	}
	return nil
}

// Tiles returns every occupied slot in row-major order.
func (g *Grid) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(g.cells))
	for _, t := range g.cells {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Count returns the number of occupied slots.
func (g *Grid) Count() int {
	n := 0
	for _, t := range g.cells {
		if t != nil {
			n++
		}
	}
	return n
}

// SwappableCount returns the number of swappable tiles.
func (g *Grid) SwappableCount() int {
	n := 0
	for _, t := range g.cells {
		if t != nil && t.swappable {
			n++
		}
	}
	return n
}

// Validate checks that every tile sits in the slot matching its own
// coordinates and that no tile occupies two slots.
func (g *Grid) Validate() error {
	seen := mapset.New[*Tile]()
	coords := mapset.New[Coord]()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			t := g.cells[g.index(x, y)]
			if t == nil {
				continue
			}
			if seen.Has(t) {
				return fmt.Errorf("board: tile %s occupies more than one slot", t.Pos())
			}
			seen.Put(t)
			if t.x != x || t.y != y {
				return fmt.Errorf("board: slot (%d,%d) holds tile reporting %s", x, y, t.Pos())
			}
			if coords.Has(t.Pos()) {
				return fmt.Errorf("board: duplicate tile coordinate %s", t.Pos())
			}
			coords.Put(t.Pos())
		}
	}
	return nil
}

// Border is one cosmetic separator line.
type Border struct {
	Center     core.Vec2
	Size       core.Vec2
	Horizontal bool
}

// Borders returns H+1 horizontal and W+1 vertical separators spanning the
// board, each thickness units wide.
func (g *Grid) Borders(thickness float64) []Border {
	if g.W == 0 || g.H == 0 {
		return nil
	}
	extent := core.V2(float64(g.W), float64(g.H)).Mul(g.spacing)
	lo := g.base.XY().Sub(extent.Scale(0.5))

	borders := make([]Border, 0, g.W+g.H+2)
	for i := 0; i <= g.H; i++ {
		borders = append(borders, Border{
			Center:     core.V2(g.base.X, lo.Y+float64(i)*g.spacing.Y),
			Size:       core.V2(extent.X+thickness, thickness),
			Horizontal: true,
		})
	}
	for i := 0; i <= g.W; i++ {
		borders = append(borders, Border{
			Center: core.V2(lo.X+float64(i)*g.spacing.X, g.base.Y),
			Size:   core.V2(thickness, extent.Y+thickness),
		})
	}
	return borders
}
