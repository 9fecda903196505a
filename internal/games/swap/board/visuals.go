package board

import (
	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// Scene is the visual-node collaborator the board drives. *scene.Graph
// implements it.
type Scene interface {
	Instantiate(t *scene.Template, pos core.Vec3, parent *scene.Node) *scene.Node
	Destroy(n *scene.Node)
	SetColor(n *scene.Node, c core.Color)
	WorldPosition(n *scene.Node) core.Vec3
	SetWorldPosition(n *scene.Node, pos core.Vec3)
	FootprintSize(n *scene.Node) (core.Vec2, bool)
	Pick(p core.Vec2) *scene.Node
}

var _ Scene = (*scene.Graph)(nil)
