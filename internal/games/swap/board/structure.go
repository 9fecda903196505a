package board

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// StructureGenerator builds a tile's nested structures from its mini layout.
type StructureGenerator struct {
	scene  Scene
	table  *MappingTable[StructureMapping]
	logger *log.Logger
}

// NewStructureGenerator creates a generator resolving characters through table.
// A nil logger discards output.
func NewStructureGenerator(sc Scene, table *MappingTable[StructureMapping], logger *log.Logger) *StructureGenerator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if table == nil {
		table = NewMappingTable[StructureMapping]()
	}
	return &StructureGenerator{scene: sc, table: table, logger: logger}
}

// Table returns the structure mapping table.
func (g *StructureGenerator) Table() *MappingTable[StructureMapping] {
	return g.table
}

// SubCellSize divides a footprint into layout cells.
func SubCellSize(footprint core.Vec2, layoutW, layoutH int) core.Vec2 {
	return footprint.Div(core.V2(float64(layoutW), float64(layoutH)))
}

// StructureOffset centers a layout inside the footprint.
func StructureOffset(footprint, subCell core.Vec2) core.Vec2 {
	return footprint.Scale(-0.5).Add(subCell.Scale(0.5))
}

// StructureScale returns the node scale for a placement: the custom scale if
// set, otherwise the sub-cell extruded to a cube using the y size as depth.
func StructureScale(m StructureMapping, subCell core.Vec2) core.Vec3 {
	if !m.CustomScale.IsZero() {
		return m.CustomScale
	}
	return core.V3(subCell.X, subCell.Y, subCell.Y)
}

// Generate instantiates one node per placement under parent and returns them.
// layoutW and layoutH give the layout's grid size. It creates only; callers
// regenerating a tile should use Regenerate.
func (g *StructureGenerator) Generate(parent *scene.Node, footprint core.Vec2, layoutW, layoutH int, placements []Placement[StructureMapping]) []*scene.Node {
	if layoutW <= 0 || layoutH <= 0 {
		return nil
	}
	subCell := SubCellSize(footprint, layoutW, layoutH)
	offset := StructureOffset(footprint, subCell)
	origin := g.scene.WorldPosition(parent)

	nodes := make([]*scene.Node, 0, len(placements))
	for _, p := range placements {
		if p.Value.Template == nil {
			continue
		}
		local := core.V2(float64(p.X), float64(p.Y)).Mul(subCell).Add(offset)
		n := g.scene.Instantiate(p.Value.Template, origin.Add(local.Vec3(0)), parent)
		n.SetLocalScale(StructureScale(p.Value, subCell))
		nodes = append(nodes, n)
	}
	return nodes
}

// Regenerate destroys the tile's previous structures and rebuilds them from
// its layout. An empty layout or a tile without a footprint leaves existing
// structures untouched.
func (g *StructureGenerator) Regenerate(t *Tile) {
	if len(t.layout) == 0 || t.node == nil {
		return
	}
	footprint, ok := g.scene.FootprintSize(t.node)
	if !ok {
		g.logger.Debug("tile has no footprint, skipping structures", "tile", t.Pos())
		return
	}

	// Walk from the end so removal never shifts an index still to visit.
	for i := len(t.structures) - 1; i >= 0; i-- {
		g.scene.Destroy(t.structures[i])
	}
	t.structures = nil

	w, h := LayoutSize(t.layout)
	placements := Parse(t.layout, g.table)
	t.structures = g.Generate(t.node, footprint, w, h, placements)
	g.logger.Debug("structures generated", "tile", t.Pos(), "count", len(t.structures))
}

// SetHolder places the tile's single holder structure. An existing holder is
// destroyed and replaced.
func (g *StructureGenerator) SetHolder(t *Tile, tmpl *scene.Template) *scene.Node {
	if t.node == nil || tmpl == nil {
		return nil
	}
	if t.holder != nil {
		g.logger.Warn("tile already has a structure, replacing it",
			"tile", t.Pos(), "old", t.holder.Name(), "new", tmpl.Name)
		g.scene.Destroy(t.holder)
	}
	t.holder = g.scene.Instantiate(tmpl, g.scene.WorldPosition(t.node), t.node)
	g.logger.Debug("structure placed", "tile", t.Pos(), "structure", tmpl.Name)
	return t.holder
}
