package board

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// Options configures board construction.
type Options struct {
	// Layout is the top-level board layout (W wall, N normal, E empty).
	// When empty, a Width×Height board of normal tiles is built.
	Layout []string
	Width  int
	Height int

	// TileTemplate is instantiated once per tile. Required.
	TileTemplate *scene.Template
	// Spacing overrides the footprint derived from TileTemplate's bounds.
	Spacing core.Vec2

	BorderThickness float64
	DrawBorders     bool
	BorderTemplate  *scene.Template

	SwapRate    float64
	InvalidPick InvalidPickPolicy

	// Blueprints are per-tile structure layouts consumed in row-major order
	// (index y*Width + x).
	Blueprints [][]string
	// Structures resolves blueprint characters.
	Structures *MappingTable[StructureMapping]

	Base core.Vec3
}

// Board wires the grid, its visuals, selection and animation together.
type Board struct {
	grid      *Grid
	scene     Scene
	selection *SelectionController
	animator  *SwapAnimator
	generator *StructureGenerator
	logger    *log.Logger

	tilesByNode map[scene.NodeID]*Tile
	borders     []*scene.Node
	swaps       int
}

// Build constructs a board. Configuration errors are logged and returned
// together with whatever was built before the failure; nothing is rolled back.
func Build(sc Scene, opts Options, logger *log.Logger) (*Board, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := opts.Width, opts.Height
	var types []Placement[TileType]
	if len(opts.Layout) > 0 {
		w, h = LayoutSize(opts.Layout)
		types = Parse(opts.Layout, TileTable())
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				types = append(types, Placement[TileType]{X: x, Y: y, Char: 'N', Value: TileNormal})
			}
		}
	}

	b := &Board{
		scene:       sc,
		logger:      logger,
		tilesByNode: make(map[scene.NodeID]*Tile),
		generator:   NewStructureGenerator(sc, opts.Structures, logger),
	}
	b.grid = NewGrid(w, h, core.Vec2{}, opts.Base)

	if opts.TileTemplate == nil {
		logger.Error("tile template is not set")
		return b, ErrMissingTemplate
	}

	footprint := opts.Spacing
	if footprint.IsZero() {
		fp, ok := opts.TileTemplate.Footprint()
		if !ok {
			logger.Error("tile template has no bounding volume", "template", opts.TileTemplate.Name)
			return b, fmt.Errorf("%w: %q", ErrNoFootprint, opts.TileTemplate.Name)
		}
		footprint = fp
	}
	b.grid = NewGrid(w, h, CellSpacing(footprint, opts.BorderThickness, opts.DrawBorders), opts.Base)

	rate := opts.SwapRate
	animator, err := NewSwapAnimator(sc, b.grid, rate, logger)
	if err != nil {
		logger.Error("invalid swap animation rate", "rate", rate)
		return b, err
	}
	b.animator = animator
	b.selection = NewSelectionController(opts.InvalidPick, b.highlight, animator.Run)
	animator.OnComplete(b.swapCompleted)

	// Placements come out in text order; build bottom-up, row-major.
	byCoord := make(map[Coord]TileType, len(types))
	for _, p := range types {
		byCoord[C(p.X, p.Y)] = p.Value
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			typ, ok := byCoord[C(x, y)]
			if !ok {
				continue
			}
			t := b.placeTile(x, y, typ, opts.TileTemplate)
			if i := y*w + x; i < len(opts.Blueprints) {
				t.SetLayout(opts.Blueprints[i])
				b.generator.Regenerate(t)
			}
		}
	}

	// Without a gutter there is no room for separators.
	if opts.DrawBorders && opts.BorderThickness > 0 {
		b.drawBorders(opts.BorderThickness, opts.BorderTemplate)
	}

	logger.Debug("board built", "width", w, "height", h, "tiles", b.grid.Count())
	return b, nil
}

func (b *Board) placeTile(x, y int, typ TileType, tmpl *scene.Template) *Tile {
	t := NewTile(x, y, typ)
	t.node = b.scene.Instantiate(tmpl, b.grid.CellToWorld(x, y), nil)
	t.node.SetName(fmt.Sprintf("Tile (%d, %d)", x, y))
	b.scene.SetColor(t.node, typ.Tint())
	b.tilesByNode[t.node.ID()] = t
	if err := b.grid.Place(t); err != nil {
		b.logger.Error("tile placement failed", "error", err)
	}
	return t
}

func (b *Board) drawBorders(thickness float64, tmpl *scene.Template) {
	if tmpl == nil {
		tmpl = &scene.Template{Name: "border", Color: core.ColorGray}
	}
	for _, br := range b.grid.Borders(thickness) {
		bt := *tmpl
		bt.Bounds = br.Size.Vec3(thickness)
		bt.Scale = core.Vec3{}
		if br.Horizontal {
			bt.Glyph = '-'
		} else {
			bt.Glyph = '|'
		}
		n := b.scene.Instantiate(&bt, br.Center.Vec3(0), nil)
		b.borders = append(b.borders, n)
	}
}

func (b *Board) highlight(t *Tile, on bool) {
	t.highlighted = on
	if t.node == nil {
		return
	}
	if on {
		b.scene.SetColor(t.node, core.ColorHighlight)
		return
	}
	b.scene.SetColor(t.node, t.typ.Tint())
}

func (b *Board) swapCompleted(_, _ *Tile) {
	b.swaps++
	b.selection.Complete()
}

// Grid returns the authoritative grid.
func (b *Board) Grid() *Grid { return b.grid }

// Selection returns the selection controller. Nil if construction failed.
func (b *Board) Selection() *SelectionController { return b.selection }

// Animator returns the swap animator. Nil if construction failed.
func (b *Board) Animator() *SwapAnimator { return b.animator }

// Generator returns the structure generator.
func (b *Board) Generator() *StructureGenerator { return b.generator }

// Scene returns the visual collaborator.
func (b *Board) Scene() Scene { return b.scene }

// Borders returns the border decoration nodes.
func (b *Board) Borders() []*scene.Node { return b.borders }

// Swaps returns the number of completed swaps.
func (b *Board) Swaps() int { return b.swaps }

// Ready reports whether construction completed far enough to play.
func (b *Board) Ready() bool { return b.selection != nil && b.animator != nil }

// Animating reports whether a swap is in flight.
func (b *Board) Animating() bool {
	return b.animator != nil && b.animator.Active()
}

// TileAt returns the tile at (x, y).
func (b *Board) TileAt(x, y int) *Tile {
	return b.grid.At(x, y)
}

// Select feeds a tile into the selection state machine.
func (b *Board) Select(t *Tile) Outcome {
	if !b.Ready() {
		return OutcomeIgnored
	}
	return b.selection.Select(t)
}

// Click hit-tests the world point and selects the struck tile, if any.
func (b *Board) Click(p core.Vec2) Outcome {
	t := b.ResolveTile(b.scene.Pick(p))
	if t == nil {
		return OutcomeIgnored
	}
	return b.Select(t)
}

// Tick advances any running swap by dt seconds. Returns true on the tick a
// swap completes.
func (b *Board) Tick(dt float64) bool {
	if b.animator == nil {
		return false
	}
	return b.animator.Tick(dt)
}

// ResolveTile maps a struck node to the tile owning it, walking up through
// nested structure nodes.
func (b *Board) ResolveTile(n *scene.Node) *Tile {
	for ; n != nil; n = n.Parent() {
		if t, ok := b.tilesByNode[n.ID()]; ok {
			return t
		}
	}
	return nil
}

// RegenerateStructures replaces the structure layout of the tile at (x, y)
// and rebuilds its structures.
func (b *Board) RegenerateStructures(x, y int, layout []string) error {
	t := b.grid.At(x, y)
	if t == nil {
		return fmt.Errorf("%w: no tile at (%d,%d)", ErrOutOfBounds, x, y)
	}
	t.SetLayout(layout)
	b.generator.Regenerate(t)
	return nil
}

// SetHolder places a single holder structure on the tile at (x, y),
// replacing any previous holder.
func (b *Board) SetHolder(x, y int, tmpl *scene.Template) error {
	t := b.grid.At(x, y)
	if t == nil {
		return fmt.Errorf("%w: no tile at (%d,%d)", ErrOutOfBounds, x, y)
	}
	b.generator.SetHolder(t, tmpl)
	return nil
}

// Clear destroys every tile and border visual. The grid keeps its size but
// holds no tiles afterwards.
func (b *Board) Clear() {
	for _, t := range b.grid.Tiles() {
		delete(b.tilesByNode, t.node.ID())
		b.scene.Destroy(t.node)
		t.node, t.structures, t.holder = nil, nil, nil
	}
	for _, n := range b.borders {
		b.scene.Destroy(n)
	}
	b.borders = nil
	b.grid = NewGrid(b.grid.W, b.grid.H, b.grid.spacing, b.grid.base)
	if b.animator != nil {
		b.animator.grid = b.grid
		b.animator.abort()
	}
	if b.selection != nil {
		b.selection.Complete()
	}
}
