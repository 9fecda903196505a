package board

import (
	"testing"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

const testDT = 1.0 / 60.0

func tileTemplate() *scene.Template {
	return &scene.Template{Name: "tile", Glyph: '.', Bounds: core.V3(1, 1, 1)}
}

func blockTemplate() *scene.Template {
	return &scene.Template{Name: "block", Glyph: '#', Bounds: core.V3(1, 1, 1)}
}

func structureTable() *MappingTable[StructureMapping] {
	return NewMappingTable(
		Mapping[StructureMapping]{Char: '#', Value: StructureMapping{Template: blockTemplate()}},
	)
}

// buildBoard builds a board from a layout with unit tiles and fails the test
// on construction errors.
func buildBoard(t *testing.T, layout ...string) (*Board, *scene.Graph) {
	t.Helper()
	g := scene.NewGraph()
	b, err := Build(g, Options{
		Layout:       layout,
		TileTemplate: tileTemplate(),
		SwapRate:     8,
		Structures:   structureTable(),
	}, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return b, g
}

// runSwap ticks until the running swap completes and returns the tick count.
func runSwap(t *testing.T, b *Board) int {
	t.Helper()
	limit := MaxTicks(testDT, b.Animator().Rate())
	for i := 1; i <= limit; i++ {
		if b.Tick(testDT) {
			return i
		}
	}
	t.Fatalf("swap did not complete within %d ticks", limit)
	return 0
}
