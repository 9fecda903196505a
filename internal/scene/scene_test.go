package scene

import (
	"testing"

	"github.com/vovakirdan/swapgrid/internal/core"
)

func box(size float64) *Template {
	return &Template{Name: "box", Glyph: '#', Bounds: core.V3(size, size, size)}
}

func TestInstantiateWorldPosition(t *testing.T) {
	g := NewGraph()
	parent := g.Instantiate(box(2), core.V3(3, 4, 0), nil)
	child := g.Instantiate(box(1), core.V3(3.5, 4.5, 0), parent)

	if child.Parent() != parent {
		t.Fatal("child should be owned by parent")
	}
	if got := child.LocalPosition(); got != core.V3(0.5, 0.5, 0) {
		t.Errorf("LocalPosition() = %v, expected (0.5, 0.5, 0)", got)
	}

	g.SetWorldPosition(parent, core.V3(0, 0, 0))
	if got := g.WorldPosition(child); got != core.V3(0.5, 0.5, 0) {
		t.Errorf("child should follow parent, got %v", got)
	}
}

func TestDestroyIsRecursive(t *testing.T) {
	g := NewGraph()
	root := g.Instantiate(box(1), core.V3(0, 0, 0), nil)
	mid := g.Instantiate(box(1), core.V3(0, 0, 0), root)
	leaf := g.Instantiate(box(1), core.V3(0, 0, 0), mid)
	other := g.Instantiate(box(1), core.V3(5, 5, 0), nil)

	g.Destroy(mid)

	if mid.Alive() || leaf.Alive() {
		t.Error("destroyed subtree should be dead")
	}
	if !root.Alive() || !other.Alive() {
		t.Error("unrelated nodes should survive")
	}
	if root.ChildCount() != 0 {
		t.Errorf("root should have no children, got %d", root.ChildCount())
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", g.Len())
	}

	// Destroying twice is harmless
	g.Destroy(mid)
	if g.Len() != 2 {
		t.Errorf("double destroy changed Len() to %d", g.Len())
	}
}

func TestFootprint(t *testing.T) {
	tmpl := &Template{Bounds: core.V3(1, 2, 1), Scale: core.V3(2, 0.5, 1)}
	fp, ok := tmpl.Footprint()
	if !ok || fp != core.V2(2, 1) {
		t.Errorf("Footprint() = (%v, %v), expected ((2,1), true)", fp, ok)
	}

	empty := &Template{}
	if _, ok := empty.Footprint(); ok {
		t.Error("template without bounds should have no footprint")
	}
}

func TestPickPrefersDeepest(t *testing.T) {
	g := NewGraph()
	tile := g.Instantiate(box(2), core.V3(0, 0, 0), nil)
	structure := g.Instantiate(box(0.5), core.V3(0.25, 0.25, 0), tile)

	if hit := g.Pick(core.V2(0.3, 0.3)); hit != structure {
		t.Errorf("Pick should hit nested structure, got %v", hit)
	}
	if hit := g.Pick(core.V2(-0.9, -0.9)); hit != tile {
		t.Errorf("Pick should hit tile outside structure, got %v", hit)
	}
	if hit := g.Pick(core.V2(5, 5)); hit != nil {
		t.Errorf("Pick outside everything should be nil, got %v", hit)
	}
}

func TestPickIgnoresBoundlessNodes(t *testing.T) {
	g := NewGraph()
	g.Instantiate(&Template{Name: "marker"}, core.V3(0, 0, 0), nil)

	if hit := g.Pick(core.V2(0, 0)); hit != nil {
		t.Errorf("node without bounds should not be pickable, got %v", hit.Name())
	}
}

func TestColor(t *testing.T) {
	g := NewGraph()
	tmpl := box(1)
	tmpl.Color = core.ColorGreen
	n := g.Instantiate(tmpl, core.V3(0, 0, 0), nil)
	if n.Color() != core.ColorGreen {
		t.Errorf("new node color = %v, expected template tint", n.Color())
	}

	g.SetColor(n, core.ColorHighlight)
	if n.Color() != core.ColorHighlight {
		t.Errorf("Color() = %v, expected highlight", n.Color())
	}
}

func TestNodesDrawOrder(t *testing.T) {
	g := NewGraph()
	a := g.Instantiate(box(1), core.V3(0, 0, 0), nil)
	child := g.Instantiate(box(1), core.V3(0, 0, 0), a)
	b := g.Instantiate(box(1), core.V3(1, 0, 0), nil)

	nodes := g.Nodes()
	if len(nodes) != 3 || nodes[0] != a || nodes[1] != b || nodes[2] != child {
		t.Errorf("Nodes() should order roots before children")
	}
}
