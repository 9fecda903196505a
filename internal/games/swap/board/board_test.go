package board

import (
	"errors"
	"testing"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

func clickCell(b *Board, x, y int) Outcome {
	return b.Click(b.Grid().CellToWorld(x, y).XY())
}

func TestWalledInSingleTile(t *testing.T) {
	b, _ := buildBoard(t, "WWW", "WNW", "WWW")

	if got := b.Grid().SwappableCount(); got != 1 {
		t.Fatalf("SwappableCount() = %d, expected 1", got)
	}
	center := b.TileAt(1, 1)
	if center == nil || !center.Swappable() || center.Type() != TileNormal {
		t.Fatalf("center tile = %v, expected swappable normal tile", center)
	}

	if got := clickCell(b, 1, 1); got != OutcomeSelected {
		t.Errorf("first click = %v, expected selected", got)
	}
	if got := clickCell(b, 1, 1); got != OutcomeDeselected {
		t.Errorf("second click = %v, expected deselected", got)
	}
	if b.Selection().State() != StateIdle {
		t.Errorf("State() = %v, expected idle", b.Selection().State())
	}
	if b.Animating() || b.Swaps() != 0 {
		t.Error("no animation should ever start")
	}

	for _, c := range []Coord{C(0, 0), C(2, 1), C(1, 2)} {
		if got := clickCell(b, c.X, c.Y); got != OutcomeIgnored {
			t.Errorf("click on wall %v = %v, expected ignored", c, got)
		}
	}
}

func TestCorridorSwap(t *testing.T) {
	b, g := buildBoard(t, "NNW")
	first, second := b.TileAt(0, 0), b.TileAt(1, 0)

	if got := clickCell(b, 2, 0); got != OutcomeIgnored {
		t.Errorf("click on wall = %v, expected ignored", got)
	}
	if got := clickCell(b, 0, 0); got != OutcomeSelected {
		t.Fatalf("click column 0 = %v, expected selected", got)
	}
	if first.Node().Color() != core.ColorHighlight {
		t.Errorf("selected tile color = %v, expected highlight", first.Node().Color())
	}
	if got := clickCell(b, 1, 0); got != OutcomeSwapStarted {
		t.Fatalf("click column 1 = %v, expected swap-started", got)
	}
	if got := clickCell(b, 2, 0); got != OutcomeIgnored {
		t.Errorf("click during swap = %v, expected ignored", got)
	}

	runSwap(t, b)

	if first.Pos() != C(1, 0) || second.Pos() != C(0, 0) {
		t.Errorf("after swap: first=%v second=%v", first.Pos(), second.Pos())
	}
	if b.Grid().At(2, 0).Type() != TileWall {
		t.Error("wall slot should be untouched")
	}
	if got := g.WorldPosition(first.Node()); got != b.Grid().CellToWorld(1, 0) {
		t.Errorf("first tile visual at %v, expected cell (1,0)", got)
	}
	if first.Highlighted() || second.Highlighted() {
		t.Error("highlights should clear after the swap")
	}
	if first.Node().Color() != TileNormal.Tint() {
		t.Errorf("tile color after swap = %v, expected base tint", first.Node().Color())
	}
	if b.Selection().State() != StateIdle || b.Swaps() != 1 {
		t.Errorf("state=%v swaps=%d, expected idle and 1", b.Selection().State(), b.Swaps())
	}
	if err := b.Grid().Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}

	// The swapped tiles are selectable at their new cells.
	if got := clickCell(b, 0, 0); got != OutcomeSelected || b.Selection().Selected()[0] != second {
		t.Errorf("click on swapped cell selected the wrong tile")
	}
}

func TestRepeatedSwapsKeepGridConsistent(t *testing.T) {
	b, _ := buildBoard(t, "NNE", "WNN")
	pairs := [][2]Coord{
		{C(0, 1), C(2, 1)},
		{C(1, 0), C(1, 1)},
		{C(2, 0), C(0, 1)},
		{C(0, 1), C(1, 0)},
	}
	for _, p := range pairs {
		b.Select(b.TileAt(p[0].X, p[0].Y))
		if got := b.Select(b.TileAt(p[1].X, p[1].Y)); got != OutcomeSwapStarted {
			t.Fatalf("swap %v = %v", p, got)
		}
		runSwap(t, b)
		if err := b.Grid().Validate(); err != nil {
			t.Fatalf("Validate() after %v: %v", p, err)
		}
	}
	if b.Swaps() != len(pairs) {
		t.Errorf("Swaps() = %d, expected %d", b.Swaps(), len(pairs))
	}
	if b.TileAt(0, 0).Type() != TileWall {
		t.Error("wall should never move")
	}
}

func TestBuildMissingTemplate(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{Layout: []string{"NN"}, SwapRate: 1}, nil)

	if !errors.Is(err, ErrMissingTemplate) {
		t.Fatalf("Build() error = %v, expected ErrMissingTemplate", err)
	}
	if b == nil || b.Ready() {
		t.Fatal("board should exist but not be ready")
	}
	if g.Len() != 0 {
		t.Errorf("no visuals should be created, got %d nodes", g.Len())
	}
	if got := b.Select(NewTile(0, 0, TileNormal)); got != OutcomeIgnored {
		t.Errorf("Select() on unready board = %v, expected ignored", got)
	}
	if b.Tick(testDT) {
		t.Error("Tick() on unready board should do nothing")
	}
}

func TestBuildNoFootprint(t *testing.T) {
	g := scene.NewGraph()
	_, err := Build(g, Options{
		Layout:       []string{"N"},
		TileTemplate: &scene.Template{Name: "flat"},
		SwapRate:     1,
	}, nil)

	if !errors.Is(err, ErrNoFootprint) {
		t.Errorf("Build() error = %v, expected ErrNoFootprint", err)
	}
}

func TestBuildInvalidRate(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{Layout: []string{"N"}, TileTemplate: tileTemplate()}, nil)

	if !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Build() error = %v, expected ErrInvalidRate", err)
	}
	if b.Ready() {
		t.Error("board without animator should not be ready")
	}
}

func TestBuildWithoutLayout(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{Width: 4, Height: 2, TileTemplate: tileTemplate(), SwapRate: 1}, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if b.Grid().Count() != 8 || b.Grid().SwappableCount() != 8 {
		t.Errorf("expected 8 normal tiles, got %d", b.Grid().Count())
	}
}

func TestShortRowsLeaveEmptySlots(t *testing.T) {
	b, _ := buildBoard(t, "NNN", "N")

	if b.Grid().W != 3 || b.Grid().H != 2 {
		t.Fatalf("grid size = %dx%d, expected 3x2", b.Grid().W, b.Grid().H)
	}
	if b.TileAt(0, 0) == nil {
		t.Error("(0,0) should hold a tile")
	}
	if b.TileAt(1, 0) != nil || b.TileAt(2, 0) != nil {
		t.Error("missing characters should leave nil slots")
	}
	if got := clickCell(b, 2, 0); got != OutcomeIgnored {
		t.Errorf("click on empty slot = %v, expected ignored", got)
	}
}

func TestTileNodesNamedAndPositioned(t *testing.T) {
	b, g := buildBoard(t, "NN", "NN")

	tile := b.TileAt(1, 0)
	if tile.Node().Name() != "Tile (1, 0)" {
		t.Errorf("Name() = %q, expected \"Tile (1, 0)\"", tile.Node().Name())
	}
	if got := g.WorldPosition(tile.Node()); got != core.V3(0.5, -0.5, 0) {
		t.Errorf("tile position = %v, expected (0.5, -0.5, 0)", got)
	}
}

func TestBlueprintsAppliedRowMajor(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{
		Layout:       []string{"NN", "NN"},
		TileTemplate: tileTemplate(),
		SwapRate:     1,
		Structures:   structureTable(),
		Blueprints:   [][]string{{"#"}, {"##"}, {"###"}},
	}, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	expected := map[Coord]int{C(0, 0): 1, C(1, 0): 2, C(0, 1): 3, C(1, 1): 0}
	for c, n := range expected {
		if got := len(b.TileAt(c.X, c.Y).Structures()); got != n {
			t.Errorf("tile %v has %d structures, expected %d", c, got, n)
		}
	}
}

func TestClickOnStructureResolvesTile(t *testing.T) {
	b, g := buildBoard(t, "NN")
	if err := b.RegenerateStructures(0, 0, []string{"#"}); err != nil {
		t.Fatalf("RegenerateStructures() failed: %v", err)
	}
	tile := b.TileAt(0, 0)
	p := b.Grid().CellToWorld(0, 0).XY()

	hit := g.Pick(p)
	if hit == nil || hit.Parent() != tile.Node() {
		t.Fatalf("Pick() should hit the structure, got %v", hit)
	}
	if b.ResolveTile(hit) != tile {
		t.Error("ResolveTile() should walk up to the owning tile")
	}
	if got := b.Click(p); got != OutcomeSelected {
		t.Errorf("Click() on structure = %v, expected selected", got)
	}
}

func TestStructuresFollowSwap(t *testing.T) {
	b, g := buildBoard(t, "NN")
	if err := b.RegenerateStructures(0, 0, []string{"#"}); err != nil {
		t.Fatalf("RegenerateStructures() failed: %v", err)
	}
	tile := b.TileAt(0, 0)

	b.Select(tile)
	b.Select(b.TileAt(1, 0))
	runSwap(t, b)

	got := g.WorldPosition(tile.Structures()[0])
	if got != b.Grid().CellToWorld(1, 0) {
		t.Errorf("structure at %v, expected it to move with its tile", got)
	}
}

func TestBordersWidenSpacing(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{
		Layout:          []string{"NN"},
		TileTemplate:    tileTemplate(),
		SwapRate:        1,
		DrawBorders:     true,
		BorderThickness: 0.2,
	}, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if got := b.Grid().Spacing(); !core.NearlyEqual(got.Vec3(0), core.V3(1.2, 1.2, 0), 1e-9) {
		t.Errorf("Spacing() = %v, expected (1.2, 1.2)", got)
	}
	if len(b.Borders()) != 5 {
		t.Errorf("Borders() = %d nodes, expected 5", len(b.Borders()))
	}
	// The gutter between the tiles belongs to a border, not a tile.
	if got := b.Click(core.V2(0, 0)); got != OutcomeIgnored {
		t.Errorf("click on gutter = %v, expected ignored", got)
	}
}

func TestZeroThicknessBordersLeaveTilesClickable(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{
		Layout:       []string{"NN"},
		TileTemplate: tileTemplate(),
		SwapRate:     1,
		DrawBorders:  true,
	}, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(b.Borders()) != 0 {
		t.Errorf("Borders() = %d nodes, expected none without a gutter", len(b.Borders()))
	}

	right := b.Grid().CellToWorld(0, 0).XY().Add(core.V2(0.49, 0))
	if got := b.Click(right); got != OutcomeSelected {
		t.Errorf("click just inside the tile edge = %v, expected selected", got)
	}
}

func TestBoardOperationsOutOfBounds(t *testing.T) {
	b, _ := buildBoard(t, "N")

	if err := b.RegenerateStructures(3, 3, []string{"#"}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("RegenerateStructures() error = %v, expected ErrOutOfBounds", err)
	}
	if err := b.SetHolder(-1, 0, blockTemplate()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetHolder() error = %v, expected ErrOutOfBounds", err)
	}
}

func TestClear(t *testing.T) {
	b, g := buildBoard(t, "NN", "WN")
	if err := b.RegenerateStructures(0, 1, []string{"##"}); err != nil {
		t.Fatalf("RegenerateStructures() failed: %v", err)
	}
	b.Select(b.TileAt(0, 1))
	b.Select(b.TileAt(1, 1))

	b.Clear()

	if g.Len() != 0 {
		t.Errorf("scene still holds %d nodes", g.Len())
	}
	if b.Grid().Count() != 0 {
		t.Errorf("grid still holds %d tiles", b.Grid().Count())
	}
	if b.Animating() || b.Selection().State() != StateIdle {
		t.Error("Clear() should stop the running swap")
	}
	if b.Tick(1) {
		t.Error("Tick() after Clear() should not commit anything")
	}
	if got := b.Click(core.V2(0, 0)); got != OutcomeIgnored {
		t.Errorf("Click() after Clear() = %v, expected ignored", got)
	}
}
