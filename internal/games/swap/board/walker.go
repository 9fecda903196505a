package board

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// Walker is a cosmetic adventurer pacing along the x axis. It turns around
// when the point just ahead of it lands on a wall or leaves the board.
type Walker struct {
	board  *Board
	node   *scene.Node
	dir    int
	speed  float64
	probe  float64
	logger *log.Logger
}

// NewWalker spawns a walker at the center of cell start, heading right.
func NewWalker(b *Board, tmpl *scene.Template, start Coord, speed, probe float64, logger *log.Logger) *Walker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	n := b.scene.Instantiate(tmpl, b.grid.CellToWorld(start.X, start.Y), nil)
	return &Walker{
		board:  b,
		node:   n,
		dir:    1,
		speed:  speed,
		probe:  probe,
		logger: logger,
	}
}

// Node returns the walker's visual node.
func (w *Walker) Node() *scene.Node { return w.node }

// Dir returns +1 when heading right and -1 when heading left.
func (w *Walker) Dir() int { return w.dir }

// Position returns the walker's world position.
func (w *Walker) Position() core.Vec3 {
	return w.board.scene.WorldPosition(w.node)
}

// Step checks for a wall ahead, then moves by speed*dt.
func (w *Walker) Step(dt float64) {
	pos := w.Position()
	ahead := core.V2(pos.X+float64(w.dir)*w.probe, pos.Y)
	if w.blocked(ahead) {
		w.dir = -w.dir
		w.logger.Debug("walker turned", "dir", w.dir, "x", pos.X)
	}
	pos.X += float64(w.dir) * w.speed * dt
	w.board.scene.SetWorldPosition(w.node, pos)
}

func (w *Walker) blocked(p core.Vec2) bool {
	cell, ok := w.board.grid.WorldToCell(p)
	if !ok {
		return true
	}
	t := w.board.grid.At(cell.X, cell.Y)
	return t != nil && t.typ == TileWall
}
