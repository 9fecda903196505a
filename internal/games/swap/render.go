package swap

import (
	"fmt"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap/board"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

const (
	minScreenW = 20
	minScreenH = 8
	hudRows    = 4 // Two rows above the board, two below
)

// cameraScale returns the configured world-to-cell scale.
func (g *Game) cameraScale() (float64, float64) {
	c := board.NewCamera(0, 0, g.opts.Config.Camera.ColsPerUnit, g.opts.Config.Camera.RowsPerUnit)
	return c.ColsPerUnit, c.RowsPerUnit
}

// boardExtent returns the world size of the board including outer borders.
func (g *Game) boardExtent() core.Vec2 {
	if g.board == nil {
		return core.Vec2{}
	}
	grid := g.board.Grid()
	ext := core.V2(float64(grid.W), float64(grid.H)).Mul(grid.Spacing())
	if len(g.board.Borders()) > 0 {
		t := g.opts.Config.Grid.BorderThickness
		ext = ext.Add(core.V2(t, t))
	}
	return ext
}

// fitCamera shrinks the configured scale until the board fits the screen
// minus the HUD rows.
func (g *Game) fitCamera(screenW, screenH int) board.Camera {
	cols, rows := g.cameraScale()
	ext := g.boardExtent()
	availW := float64(screenW - 2)
	availH := float64(screenH - hudRows)
	if ext.X > 0 && availW > 0 && ext.X*cols > availW {
		cols = availW / ext.X
	}
	if ext.Y > 0 && availH > 0 && ext.Y*rows > availH {
		rows = availH / ext.Y
	}
	return board.NewCamera(screenW, screenH, cols, rows)
}

// PreferredSize returns the screen size that shows the whole board at the
// configured scale with a one-cell margin.
func (g *Game) PreferredSize() (int, int) {
	cols, rows := g.cameraScale()
	ext := g.boardExtent()
	return int(math.Ceil(ext.X*cols)) + 2, int(math.Ceil(ext.Y*rows)) + 2
}

// Snapshot draws the board alone at its preferred size and returns it as
// text with trailing spaces trimmed.
func (g *Game) Snapshot() string {
	w, h := g.PreferredSize()
	cols, rows := g.cameraScale()

	screen := core.NewScreen(w, h)
	g.drawBoard(screen, board.NewCamera(w, h, cols, rows))

	lines := strings.Split(screen.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.buildErr != nil {
		g.renderError(dst)
		return
	}

	g.RenderBoard(dst)
	g.renderCursor(dst)
	g.renderHUD(dst)
}

// RenderBoard draws every scene node: tiles and borders first, structures
// over their tiles, the walker on top.
func (g *Game) RenderBoard(dst *core.Screen) {
	g.drawBoard(dst, g.camera)
}

func (g *Game) drawBoard(dst *core.Screen, cam board.Camera) {
	if g.graph == nil || g.board == nil {
		return
	}
	borders := mapset.New[scene.NodeID]()
	for _, n := range g.board.Borders() {
		borders.Put(n.ID())
	}

	var walker *scene.Node
	if g.walker != nil {
		walker = g.walker.Node()
	}

	for _, n := range g.graph.Nodes() {
		if n == walker {
			continue
		}
		glyph := g.nodeGlyph(n)
		bounds, ok := g.graph.WorldBounds(n)
		if !ok {
			drawPoint(dst, cam, g.graph.WorldPosition(n).XY(), glyph, n.Color())
			continue
		}
		r := cam.Project(bounds)
		if r.W <= 0 || r.H <= 0 {
			// Smaller than a cell: still show it at its center.
			drawPoint(dst, cam, bounds.Center, glyph, n.Color())
			continue
		}
		if borders.Has(n.ID()) {
			g.drawBorder(dst, r, glyph, n.Color())
			continue
		}
		dst.DrawRect(r, glyph, n.Color())
	}

	if walker != nil {
		drawPoint(dst, cam, g.graph.WorldPosition(walker).XY(), walker.Template().Glyph, walker.Color())
	}
}

func drawPoint(dst *core.Screen, cam board.Camera, p core.Vec2, glyph rune, c core.Color) {
	x, y := cam.WorldToScreen(p)
	dst.SetColored(x, y, glyph, c)
}

// nodeGlyph picks the character for a node: tiles by type, borders by
// orientation, anything else by its template.
func (g *Game) nodeGlyph(n *scene.Node) rune {
	if t := g.board.ResolveTile(n); t != nil && t.Node() == n {
		return g.opts.Glyphs.Tile(t.Type())
	}
	tmpl := n.Template()
	if tmpl == nil {
		return '?'
	}
	switch tmpl.Glyph {
	case '-':
		return g.opts.Glyphs.HBorder
	case '|':
		return g.opts.Glyphs.VBorder
	case 0:
		return '?'
	}
	return tmpl.Glyph
}

// drawBorder fills r with a separator glyph, turning crossings into Cross.
func (g *Game) drawBorder(dst *core.Screen, r core.Rect, glyph rune, c core.Color) {
	gl := g.opts.Glyphs
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			cur := dst.Get(x, y)
			out := glyph
			if cur == gl.Cross || (cur == gl.HBorder && glyph == gl.VBorder) || (cur == gl.VBorder && glyph == gl.HBorder) {
				out = gl.Cross
			}
			dst.SetColored(x, y, out, c)
		}
	}
}

func (g *Game) renderCursor(dst *core.Screen) {
	t := g.board.TileAt(g.cursor.X, g.cursor.Y)
	if t == nil || t.Node() == nil {
		return
	}
	bounds, ok := g.graph.WorldBounds(t.Node())
	if !ok {
		return
	}
	r := g.camera.Project(bounds)
	if r.W <= 0 || r.H <= 0 {
		return
	}
	corners := g.opts.Glyphs.Cursor
	dst.SetColored(r.X, r.Y, corners[0], core.ColorYellow)
	dst.SetColored(r.Right()-1, r.Y, corners[1], core.ColorYellow)
	dst.SetColored(r.X, r.Bottom()-1, corners[2], core.ColorYellow)
	dst.SetColored(r.Right()-1, r.Bottom()-1, corners[3], core.ColorYellow)
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := dst.Width()
	dst.DrawTextColored(1, 0, g.Title(), core.ColorCyan)

	swaps := fmt.Sprintf("Movable: %d  Swaps: %d", g.board.Grid().SwappableCount(), g.board.Swaps())
	dst.DrawText(w-len(swaps)-1, 0, swaps)

	status := g.board.Selection().State().String()
	if g.paused {
		status = "PAUSED"
	}
	dst.DrawTextColored(1, dst.Height()-1, status, core.ColorGray)

	pos := fmt.Sprintf("Cursor %s", g.cursor)
	dst.DrawText(w-len(pos)-1, dst.Height()-1, pos)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderError(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Board could not be built")
	dst.DrawTextCentered(y, g.buildErr.Error())
	dst.DrawTextCentered(y+2, "Press R to retry, Q to quit")
}
