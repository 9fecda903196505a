// Package board implements the tile-swap puzzle: layout parsing, structure
// generation, the grid model, tile selection and the swap animation.
// It is UI-agnostic and deterministic; visuals go through the Scene interface.
package board

import (
	"fmt"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// TileType classifies a board cell occupant.
type TileType uint8

const (
	TileNormal TileType = iota
	TileWall
	TileEmpty
)

// String returns the string representation of a tile type.
func (t TileType) String() string {
	switch t {
	case TileNormal:
		return "normal"
	case TileWall:
		return "wall"
	case TileEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Char returns the layout character for the tile type.
func (t TileType) Char() rune {
	switch t {
	case TileWall:
		return 'W'
	case TileEmpty:
		return 'E'
	default:
		return 'N'
	}
}

// Tint returns the resting color of a tile of this type.
func (t TileType) Tint() core.Color {
	switch t {
	case TileWall:
		return core.ColorGray
	case TileEmpty:
		return core.ColorDefault
	default:
		return core.ColorWhite
	}
}

// TileTable is the mapping used for top-level board layouts.
func TileTable() *MappingTable[TileType] {
	return NewMappingTable(
		Mapping[TileType]{Char: 'W', Value: TileWall},
		Mapping[TileType]{Char: 'N', Value: TileNormal},
		Mapping[TileType]{Char: 'E', Value: TileEmpty},
	)
}

// Coord is a board coordinate. X grows to the right, Y grows upward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Tile is one board cell occupant. It exclusively owns its visual node and
// every structure node generated beneath it.
type Tile struct {
	x, y        int
	typ         TileType
	swappable   bool
	highlighted bool

	node       *scene.Node
	structures []*scene.Node
	holder     *scene.Node
	layout     []string
}

// NewTile creates a tile at (x, y). Walls are never swappable; other types
// start swappable.
func NewTile(x, y int, typ TileType) *Tile {
	return &Tile{
		x:         x,
		y:         y,
		typ:       typ,
		swappable: typ != TileWall,
	}
}

// X returns the tile's board column.
func (t *Tile) X() int { return t.x }

// Y returns the tile's board row.
func (t *Tile) Y() int { return t.y }

// Pos returns the tile's board coordinate.
func (t *Tile) Pos() Coord { return Coord{X: t.x, Y: t.y} }

// Type returns the tile type.
func (t *Tile) Type() TileType { return t.typ }

// Swappable reports whether the tile may take part in a swap.
func (t *Tile) Swappable() bool { return t.swappable }

// SetSwappable overrides swappability. Walls stay non-swappable.
func (t *Tile) SetSwappable(v bool) {
	t.swappable = v && t.typ != TileWall
}

// Highlighted reports the selection highlight state.
func (t *Tile) Highlighted() bool { return t.highlighted }

// Node returns the tile's visual node.
func (t *Tile) Node() *scene.Node { return t.node }

// Structures returns the currently generated structure nodes.
func (t *Tile) Structures() []*scene.Node { return t.structures }

// Holder returns the tile's single holder structure, if any.
func (t *Tile) Holder() *scene.Node { return t.holder }

// Layout returns the tile's structure layout rows.
func (t *Tile) Layout() []string { return t.layout }

// SetLayout replaces the tile's structure layout. Call Board.RegenerateStructures
// to rebuild the visuals.
func (t *Tile) SetLayout(rows []string) {
	t.layout = append([]string(nil), rows...)
}

func (t *Tile) setPosition(x, y int) {
	t.x = x
	t.y = y
}

// String implements fmt.Stringer.
func (t *Tile) String() string {
	return fmt.Sprintf("%s tile %s", t.typ, t.Pos())
}
