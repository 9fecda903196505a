package swap

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/swapgrid/internal/config"
	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap/board"
	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
	"github.com/vovakirdan/swapgrid/internal/registry"
)

func newGame(t *testing.T, layout ...string) *Game {
	t.Helper()
	g := New(Options{
		Level:  levels.Level{ID: "test", Name: "Test", Layout: layout},
		Config: config.DefaultSwapConfig(),
		Glyphs: ASCIIGlyphs,
	})
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func clickFrame(g *Game, x, y int) core.InputFrame {
	p := g.Board().Grid().CellToWorld(x, y).XY()
	sx, sy := g.Camera().WorldToScreen(p)
	in := core.NewInputFrame()
	in.AddClick(sx, sy)
	return in
}

func actionFrame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// finishSwap steps until a swap completes.
func finishSwap(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if g.Step(core.NewInputFrame()).SwapCompleted {
			return
		}
	}
	t.Fatal("swap never completed")
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{"swap", "swap_walker"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if !strings.HasPrefix(g.Title(), "Swap: ") {
			t.Errorf("Title() = %q", g.Title())
		}
		g.Reset(core.DefaultConfig())
		if g.State().Swaps != 0 {
			t.Errorf("%s: fresh game has swaps", id)
		}
	}
}

func TestClickSwap(t *testing.T) {
	g := newGame(t, "NNW")
	first, second := g.Board().TileAt(0, 0), g.Board().TileAt(1, 0)

	g.Step(clickFrame(g, 0, 0))
	if g.LastOutcome() != board.OutcomeSelected {
		t.Fatalf("first click = %v, expected selected", g.LastOutcome())
	}
	res := g.Step(clickFrame(g, 1, 0))
	if g.LastOutcome() != board.OutcomeSwapStarted || !res.State.Animating {
		t.Fatalf("second click = %v, expected swap-started", g.LastOutcome())
	}

	finishSwap(t, g)

	if first.Pos() != board.C(1, 0) || second.Pos() != board.C(0, 0) {
		t.Errorf("after swap: first=%v second=%v", first.Pos(), second.Pos())
	}
	if s := g.State(); s.Swaps != 1 || s.Animating {
		t.Errorf("State() = %+v, expected one finished swap", s)
	}
	if g.Cursor() != board.C(1, 0) {
		t.Errorf("cursor should follow the last click, got %v", g.Cursor())
	}
}

func TestClickOnWallIgnored(t *testing.T) {
	g := newGame(t, "NNW")

	g.Step(clickFrame(g, 2, 0))
	if g.LastOutcome() != board.OutcomeIgnored {
		t.Errorf("click on wall = %v, expected ignored", g.LastOutcome())
	}
	if g.Board().Selection().State() != board.StateIdle {
		t.Error("wall click should not change the selection")
	}

	// Outside the board entirely.
	in := core.NewInputFrame()
	in.AddClick(0, 0)
	g.Step(in)
	if g.LastOutcome() != board.OutcomeIgnored {
		t.Errorf("click off the board = %v, expected ignored", g.LastOutcome())
	}
}

func TestKeyboardSelect(t *testing.T) {
	g := newGame(t, "NNW", "WNN")

	if g.Cursor() != board.C(0, 1) {
		t.Fatalf("cursor should start on the top-left swappable tile, got %v", g.Cursor())
	}
	g.Step(actionFrame(core.ActionSelect))
	if g.LastOutcome() != board.OutcomeSelected {
		t.Fatalf("Select = %v, expected selected", g.LastOutcome())
	}

	g.Step(actionFrame(core.ActionDown))
	g.Step(actionFrame(core.ActionRight))
	if g.Cursor() != board.C(1, 0) {
		t.Fatalf("cursor = %v, expected (1,0)", g.Cursor())
	}
	g.Step(actionFrame(core.ActionSelect))
	if g.LastOutcome() != board.OutcomeSwapStarted {
		t.Errorf("second Select = %v, expected swap-started", g.LastOutcome())
	}
}

func TestCursorClamps(t *testing.T) {
	g := newGame(t, "NN")
	for i := 0; i < 5; i++ {
		g.Step(actionFrame(core.ActionRight))
		g.Step(actionFrame(core.ActionUp))
	}
	if g.Cursor() != board.C(1, 0) {
		t.Errorf("cursor = %v, expected (1,0)", g.Cursor())
	}
}

func TestBackClearsSelection(t *testing.T) {
	g := newGame(t, "NN")
	g.Step(actionFrame(core.ActionSelect))
	g.Step(actionFrame(core.ActionBack))

	if g.Board().Selection().State() != board.StateIdle {
		t.Errorf("State() = %v, expected idle", g.Board().Selection().State())
	}
}

func TestPauseFreezesAnimation(t *testing.T) {
	g := newGame(t, "NN")
	g.Step(clickFrame(g, 0, 0))
	g.Step(clickFrame(g, 1, 0))

	g.Step(actionFrame(core.ActionPause))
	progress := g.Board().Animator().Progress()
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	if got := g.Board().Animator().Progress(); got != progress {
		t.Errorf("progress moved while paused: %v -> %v", progress, got)
	}
	// Clicks while paused are dropped.
	g.Step(clickFrame(g, 0, 0))
	if g.Board().Selection().State() != board.StateResolving {
		t.Error("paused game should not accept clicks")
	}

	g.Step(actionFrame(core.ActionPause))
	finishSwap(t, g)
}

func TestRestartRebuilds(t *testing.T) {
	g := newGame(t, "NN")
	g.Step(clickFrame(g, 0, 0))
	g.Step(clickFrame(g, 1, 0))
	finishSwap(t, g)
	old := g.Board()

	g.Step(actionFrame(core.ActionRestart))

	if g.Board() == old {
		t.Error("restart should build a new board")
	}
	if g.State().Swaps != 0 {
		t.Errorf("Swaps = %d after restart", g.State().Swaps)
	}
}

func TestBuildErrorIsReported(t *testing.T) {
	cfg := config.DefaultSwapConfig()
	cfg.Tile.Bounds = nil
	g := New(Options{Level: levels.Level{ID: "flat", Layout: []string{"NN"}}, Config: cfg})
	g.Reset(core.DefaultConfig())

	if !errors.Is(g.Err(), board.ErrNoFootprint) {
		t.Fatalf("Err() = %v, expected ErrNoFootprint", g.Err())
	}
	g.Step(clickFrame(g, 0, 0))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Board could not be built") {
		t.Error("render should explain the construction failure")
	}
}

func TestRenderDrawsBoardAndHUD(t *testing.T) {
	g := newGame(t, "NNW")
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Swap: Test", "Movable: 2", "Swaps: 0", "idle", "#", "."} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.Step(clickFrame(g, 0, 0))
	g.Render(screen)
	tile := g.Board().TileAt(0, 0)
	bounds, _ := g.Graph().WorldBounds(tile.Node())
	r := g.Camera().Project(bounds)
	if c := screen.GetCell(r.X+1, r.Y+1); c.Color != core.ColorHighlight {
		t.Errorf("selected tile drawn in %v, expected highlight", c.Color)
	}
}

func TestTooSmall(t *testing.T) {
	g := newGame(t, "NN")
	g.Resize(10, 4)

	g.Step(actionFrame(core.ActionSelect))
	if g.Board().Selection().State() != board.StateIdle {
		t.Error("input should be ignored while the window is too small")
	}
	screen := core.NewScreen(10, 4)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Error("expected a too-small message")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newGame(t, "NNNNN", "NNNNN", "NNNNN", "NNNNN", "NNNNN")
	b := g.Board()
	cols := g.Camera().ColsPerUnit

	g.Resize(40, 16)

	if g.Board() != b {
		t.Error("resize should keep the board")
	}
	if g.Camera().ColsPerUnit >= cols {
		t.Errorf("camera should shrink to fit: %v -> %v", cols, g.Camera().ColsPerUnit)
	}
	// Picking still lands on the right tile.
	g.Step(clickFrame(g, 4, 4))
	if g.Cursor() != board.C(4, 4) {
		t.Errorf("cursor = %v, expected (4,4)", g.Cursor())
	}
}

func TestSnapshotASCII(t *testing.T) {
	g := newGame(t, "NNW")
	out := g.Snapshot()
	w, h := g.PreferredSize()

	if lines := strings.Split(out, "\n"); len(lines) != h {
		t.Errorf("snapshot has %d lines, expected %d", len(lines), h)
	}
	if w != 34 || h != 8 {
		t.Errorf("PreferredSize() = %dx%d, expected 34x8", w, h)
	}
	for _, want := range []string{"#", ".", "+", "-", "|"} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q:\n%s", want, out)
		}
	}
}

func TestWalkerVariant(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("garden")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	g := New(Options{Level: lvl, Config: config.DefaultSwapConfig(), Walker: true})
	g.Reset(core.DefaultConfig())

	w := g.Walker()
	if w == nil {
		t.Fatal("walker should be spawned")
	}
	start := w.Position()
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if w.Position() == start {
		t.Error("walker should move")
	}
	if err := g.Board().Grid().Validate(); err != nil {
		t.Errorf("walker must not disturb the grid: %v", err)
	}
	if g.ID() != "swap_walker" {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestWalkerFromMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		expected bool
	}{
		{"enabled", map[string]string{"walker": "true"}, true},
		{"disabled", map[string]string{"walker": "false"}, false},
		{"garbage", map[string]string{"walker": "sometimes"}, false},
		{"absent", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(Options{
				Level:  levels.Level{ID: "meta", Layout: []string{"NNN"}, Metadata: tt.metadata},
				Config: config.DefaultSwapConfig(),
			})
			g.Reset(core.DefaultConfig())
			if got := g.Walker() != nil; got != tt.expected {
				t.Errorf("walker spawned = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSnapshotKeepsCamera(t *testing.T) {
	g := newGame(t, "NN", "NW")
	before := g.Camera()
	click := clickFrame(g, 0, 1)

	if g.Snapshot() == "" {
		t.Fatal("Snapshot() returned nothing")
	}
	if g.Camera() != before {
		t.Errorf("Snapshot() changed the camera: %+v -> %+v", before, g.Camera())
	}

	g.Step(click)
	if g.LastOutcome() != board.OutcomeSelected {
		t.Errorf("click after Snapshot() = %v, expected selected", g.LastOutcome())
	}
}

func TestHoldersPlaced(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("cross")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	g := New(Options{Level: lvl, Config: config.DefaultSwapConfig()})
	g.Reset(core.DefaultConfig())

	center := g.Board().TileAt(2, 2)
	if center.Holder() == nil || center.Holder().Name() != "flag" {
		t.Errorf("center tile should hold a flag, got %v", center.Holder())
	}
	if n := len(g.Board().TileAt(1, 1).Structures()); n != 2 {
		t.Errorf("tile (1,1) has %d structures, expected 2", n)
	}
}
