// Package scene is an in-memory scene graph: visual nodes instantiated from
// templates, arranged in an ownership tree, with world-space bounds for picking.
//
// Positions compose by translation only. A child's world position is its
// parent's world position plus its local position; scale is never inherited.
package scene

import (
	"sort"

	"github.com/vovakirdan/swapgrid/internal/core"
)

// NodeID uniquely identifies a node for the lifetime of a Graph.
type NodeID uint64

// Template describes how to instantiate a node.
type Template struct {
	Name  string
	Glyph rune       // Character drawn by the terminal renderer
	Color core.Color // Base tint
	// Bounds is the size of the template's bounding volume. A zero size means
	// the template has no bounding volume.
	Bounds core.Vec3
	// Scale is the template's default local scale. Zero means (1,1,1).
	Scale core.Vec3
}

// HasBounds reports whether the template carries a bounding volume.
func (t *Template) HasBounds() bool {
	return t != nil && t.Bounds.X > 0 && t.Bounds.Y > 0
}

// DefaultScale returns Scale, or (1,1,1) when unset.
func (t *Template) DefaultScale() core.Vec3 {
	if t == nil || t.Scale.IsZero() {
		return core.V3(1, 1, 1)
	}
	return t.Scale
}

// Footprint returns bounds × scale on the x/y plane.
func (t *Template) Footprint() (core.Vec2, bool) {
	if !t.HasBounds() {
		return core.Vec2{}, false
	}
	return t.Bounds.Mul(t.DefaultScale()).XY(), true
}

// Node is one visual element in the graph.
type Node struct {
	id       NodeID
	name     string
	template *Template
	parent   *Node
	children []*Node
	local    core.Vec3
	scale    core.Vec3
	color    core.Color
	alive    bool
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node's display name.
func (n *Node) Name() string { return n.name }

// SetName renames the node.
func (n *Node) SetName(name string) { n.name = name }

// Template returns the template the node was created from.
func (n *Node) Template() *Template { return n.template }

// Parent returns the owning node, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the owned nodes in creation order. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of owned nodes.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th owned node.
func (n *Node) Child(i int) *Node { return n.children[i] }

// LocalPosition returns the position relative to the parent.
func (n *Node) LocalPosition() core.Vec3 { return n.local }

// SetLocalPosition moves the node relative to its parent.
func (n *Node) SetLocalPosition(p core.Vec3) { n.local = p }

// LocalScale returns the node's scale.
func (n *Node) LocalScale() core.Vec3 { return n.scale }

// SetLocalScale sets the node's scale.
func (n *Node) SetLocalScale(s core.Vec3) { n.scale = s }

// Color returns the current tint.
func (n *Node) Color() core.Color { return n.color }

// Alive reports whether the node has not been destroyed.
func (n *Node) Alive() bool { return n.alive }

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Graph owns every live node.
type Graph struct {
	nextID NodeID
	live   map[NodeID]*Node
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{live: make(map[NodeID]*Node)}
}

// Instantiate creates a node from the template at the given world position,
// owned by parent (nil for a root node).
func (g *Graph) Instantiate(t *Template, pos core.Vec3, parent *Node) *Node {
	g.nextID++
	n := &Node{
		id:       g.nextID,
		template: t,
		scale:    t.DefaultScale(),
		alive:    true,
	}
	if t != nil {
		n.name = t.Name
		n.color = t.Color
	}
	if parent != nil && parent.alive {
		n.parent = parent
		parent.children = append(parent.children, n)
	}
	g.live[n.id] = n
	g.SetWorldPosition(n, pos)
	return n
}

// Destroy removes n and, recursively, every node it owns.
// Destroying a dead node is a no-op.
func (g *Graph) Destroy(n *Node) {
	if n == nil || !n.alive {
		return
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		g.destroyTree(n.children[i])
	}
	n.children = nil
	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
	n.alive = false
	delete(g.live, n.id)
}

// destroyTree kills a subtree without touching the parent's child list.
func (g *Graph) destroyTree(n *Node) {
	for _, c := range n.children {
		g.destroyTree(c)
	}
	n.children = nil
	n.parent = nil
	n.alive = false
	delete(g.live, n.id)
}

// SetColor tints a node.
func (g *Graph) SetColor(n *Node, c core.Color) {
	n.color = c
}

// WorldPosition returns the node's absolute position.
func (g *Graph) WorldPosition(n *Node) core.Vec3 {
	p := n.local
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.local)
	}
	return p
}

// SetWorldPosition moves the node to an absolute position.
func (g *Graph) SetWorldPosition(n *Node, pos core.Vec3) {
	if n.parent == nil {
		n.local = pos
		return
	}
	n.local = pos.Sub(g.WorldPosition(n.parent))
}

// FootprintSize returns the x/y size of the node's bounding volume in world
// units, and false when the template has no bounding volume.
func (g *Graph) FootprintSize(n *Node) (core.Vec2, bool) {
	if !n.template.HasBounds() {
		return core.Vec2{}, false
	}
	return n.template.Bounds.Mul(n.scale).XY(), true
}

// WorldBounds returns the node's world-space box.
func (g *Graph) WorldBounds(n *Node) (core.Bounds, bool) {
	size, ok := g.FootprintSize(n)
	if !ok {
		return core.Bounds{}, false
	}
	return core.Bounds{Center: g.WorldPosition(n).XY(), Size: size}, true
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.live)
}

// Nodes returns every live node ordered for drawing: shallow before deep,
// older before newer.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.live))
	for _, n := range g.live {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		di, dj := nodes[i].Depth(), nodes[j].Depth()
		if di != dj {
			return di < dj
		}
		return nodes[i].id < nodes[j].id
	})
	return nodes
}

// Pick returns the node struck at world point p: the deepest node whose
// bounds contain p, latest-created on ties. Returns nil when nothing is hit.
func (g *Graph) Pick(p core.Vec2) *Node {
	var hit *Node
	hitDepth := -1
	for _, n := range g.live {
		b, ok := g.WorldBounds(n)
		if !ok || !b.Contains(p) {
			continue
		}
		d := n.Depth()
		if d > hitDepth || (d == hitDepth && n.id > hit.id) {
			hit, hitDepth = n, d
		}
	}
	return hit
}
