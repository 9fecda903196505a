package board

import (
	"testing"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

func structurePositions(b *Board, tile *Tile) []core.Vec3 {
	var out []core.Vec3
	for _, n := range tile.Structures() {
		out = append(out, b.Scene().WorldPosition(n))
	}
	return out
}

func TestGenerateCentersSubGrid(t *testing.T) {
	g := scene.NewGraph()
	parent := g.Instantiate(&scene.Template{Bounds: core.V3(2, 2, 2)}, core.V3(0, 0, 0), nil)
	gen := NewStructureGenerator(g, structureTable(), nil)

	layout := []string{"#.", "##"}
	w, h := LayoutSize(layout)
	nodes := gen.Generate(parent, core.V2(2, 2), w, h, Parse(layout, gen.Table()))

	expected := []core.Vec3{
		core.V3(-0.5, 0.5, 0),
		core.V3(-0.5, -0.5, 0),
		core.V3(0.5, -0.5, 0),
	}
	if len(nodes) != len(expected) {
		t.Fatalf("Generate() created %d nodes, expected %d", len(nodes), len(expected))
	}
	for i, n := range nodes {
		if got := g.WorldPosition(n); !core.NearlyEqual(got, expected[i], 1e-9) {
			t.Errorf("node %d at %v, expected %v", i, got, expected[i])
		}
		if n.Parent() != parent {
			t.Errorf("node %d should be owned by the tile", i)
		}
		if n.LocalScale() != core.V3(1, 1, 1) {
			t.Errorf("node %d scale = %v, expected auto-fit (1,1,1)", i, n.LocalScale())
		}
	}
}

func TestStructureScale(t *testing.T) {
	sub := core.V2(0.5, 0.25)

	auto := StructureScale(StructureMapping{}, sub)
	if auto != core.V3(0.5, 0.25, 0.25) {
		t.Errorf("auto-fit scale = %v, expected (0.5, 0.25, 0.25)", auto)
	}

	custom := StructureScale(StructureMapping{CustomScale: core.V3(2, 3, 4)}, sub)
	if custom != core.V3(2, 3, 4) {
		t.Errorf("custom scale = %v, expected (2, 3, 4)", custom)
	}
}

func TestRegenerateIsIdempotent(t *testing.T) {
	b, g := buildBoard(t, "N")
	tile := b.TileAt(0, 0)

	if err := b.RegenerateStructures(0, 0, []string{"#.#", ".#.", "#.#"}); err != nil {
		t.Fatalf("RegenerateStructures() failed: %v", err)
	}
	firstCount := len(tile.Structures())
	firstPositions := structurePositions(b, tile)
	firstLen := g.Len()

	b.Generator().Regenerate(tile)

	if len(tile.Structures()) != firstCount {
		t.Errorf("structure count changed from %d to %d", firstCount, len(tile.Structures()))
	}
	if g.Len() != firstLen {
		t.Errorf("scene grew from %d to %d nodes: old structures leaked", firstLen, g.Len())
	}
	for i, p := range structurePositions(b, tile) {
		if !core.NearlyEqual(p, firstPositions[i], 1e-9) {
			t.Errorf("structure %d moved from %v to %v", i, firstPositions[i], p)
		}
	}
	if tile.Node().ChildCount() != 5 {
		t.Errorf("tile owns %d nodes, expected 5", tile.Node().ChildCount())
	}
}

func TestRegenerateEmptyLayoutKeepsStructures(t *testing.T) {
	b, _ := buildBoard(t, "N")
	tile := b.TileAt(0, 0)
	if err := b.RegenerateStructures(0, 0, []string{"##"}); err != nil {
		t.Fatalf("RegenerateStructures() failed: %v", err)
	}

	if err := b.RegenerateStructures(0, 0, nil); err != nil {
		t.Fatalf("RegenerateStructures() failed: %v", err)
	}
	if len(tile.Structures()) != 2 {
		t.Errorf("empty layout should leave 2 structures, got %d", len(tile.Structures()))
	}
}

func TestRegenerateWithoutFootprintIsNoop(t *testing.T) {
	g := scene.NewGraph()
	b, err := Build(g, Options{
		Layout:       []string{"N"},
		TileTemplate: &scene.Template{Name: "flat"},
		Spacing:      core.V2(1, 1),
		SwapRate:     8,
		Structures:   structureTable(),
		Blueprints:   [][]string{{"##"}},
	}, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if n := len(b.TileAt(0, 0).Structures()); n != 0 {
		t.Errorf("tile without footprint should get no structures, got %d", n)
	}
}

func TestSetHolderReplaces(t *testing.T) {
	b, g := buildBoard(t, "N")
	tile := b.TileAt(0, 0)

	if err := b.SetHolder(0, 0, blockTemplate()); err != nil {
		t.Fatalf("SetHolder() failed: %v", err)
	}
	first := tile.Holder()
	before := g.Len()

	if err := b.SetHolder(0, 0, &scene.Template{Name: "tower", Bounds: core.V3(1, 1, 1)}); err != nil {
		t.Fatalf("SetHolder() failed: %v", err)
	}

	if first.Alive() {
		t.Error("previous holder should be destroyed")
	}
	if tile.Holder().Name() != "tower" {
		t.Errorf("holder = %q, expected tower", tile.Holder().Name())
	}
	if g.Len() != before {
		t.Errorf("scene size changed from %d to %d", before, g.Len())
	}
}
