// Package swap implements the tile-swap board as a registry game: it builds a
// board from a level and engine config, feeds keyboard and mouse input into
// the selection state machine, and advances swap animations once per tick.
package swap

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swapgrid/internal/config"
	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap/board"
	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
	"github.com/vovakirdan/swapgrid/internal/registry"
	"github.com/vovakirdan/swapgrid/internal/scene"
)

// Options configures a game instance.
type Options struct {
	Level  levels.Level
	Config config.SwapConfig
	Logger *log.Logger
	// Walker forces the walker on regardless of Config.Walker.Enabled.
	Walker bool
	Glyphs Glyphs
}

// Game implements registry.Game for a single swap board.
type Game struct {
	opts   Options
	logger *log.Logger

	runtime  core.RuntimeConfig
	graph    *scene.Graph
	board    *board.Board
	camera   board.Camera
	walker   *board.Walker
	buildErr error

	cursor   board.Coord
	paused   bool
	tick     uint64
	last     board.Outcome
	tooSmall bool
}

// Variant is a registered game ID bound to a builtin board.
type Variant struct {
	ID      string
	LevelID string
	Walker  bool
}

// Variants lists the registered variants.
var Variants = []Variant{
	{ID: "swap", LevelID: "cross"},
	{ID: "swap_walker", LevelID: "garden", Walker: true},
}

// LookupVariant returns the variant registered under id.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return newBuiltin(v.LevelID, v.Walker)
		})
	}
}

// newBuiltin creates a game on an embedded board with default config.
func newBuiltin(id string, walker bool) *Game {
	lvl, err := levels.Builtin().LoadByID(id)
	if err != nil {
		lvl = levels.Level{ID: "corridor", Name: "Corridor", Width: 3, Height: 1, Layout: []string{"NNW"}}
	}
	return New(Options{Level: lvl, Config: config.DefaultSwapConfig(), Walker: walker})
}

// New creates a game. Call Reset before the first Step.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Glyphs == (Glyphs{}) {
		opts.Glyphs = BlockGlyphs
	}
	return &Game{opts: opts, logger: opts.Logger}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.opts.Walker {
		return "swap_walker"
	}
	return "swap"
}

// Title returns the display name.
func (g *Game) Title() string {
	name := g.opts.Level.Name
	if name == "" {
		name = g.opts.Level.ID
	}
	if g.opts.Walker {
		return "Swap: " + name + " (walker)"
	}
	return "Swap: " + name
}

// Reset builds the board from scratch.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.paused = false
	g.last = board.OutcomeIgnored
	g.walker = nil
	g.graph = scene.NewGraph()

	g.board, g.buildErr = board.Build(g.graph, g.boardOptions(), g.logger)
	if g.buildErr != nil {
		g.logger.Error("board construction failed", "board", g.opts.Level.ID, "error", g.buildErr)
	} else {
		g.placeHolders()
		g.spawnWalker()
		g.logger.Info("board ready", "board", g.opts.Level.ID,
			"width", g.board.Grid().W, "height", g.board.Grid().H)
	}

	g.cursor = g.firstSwappable()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// boardOptions translates the level and engine config into construction options.
func (g *Game) boardOptions() board.Options {
	cfg := g.opts.Config
	lvl := g.opts.Level

	table, err := lvl.StructureTable()
	if err != nil {
		g.logger.Warn("structure table unavailable", "board", lvl.ID, "error", err)
	}

	w, h := lvl.Width, lvl.Height
	if len(lvl.Layout) == 0 && (w <= 0 || h <= 0) {
		w, h = cfg.Grid.Width, cfg.Grid.Height
	}

	tile := &scene.Template{
		Name:   "tile",
		Glyph:  g.opts.Glyphs.Normal,
		Bounds: cfg.Tile.BoundsVec(),
		Scale:  cfg.Tile.ScaleVec(),
	}

	return board.Options{
		Layout:          lvl.Layout,
		Width:           w,
		Height:          h,
		TileTemplate:    tile,
		Spacing:         cfg.Tile.SpacingVec(),
		BorderThickness: cfg.Grid.BorderThickness,
		DrawBorders:     cfg.Grid.DrawBorders,
		BorderTemplate:  &scene.Template{Name: "border", Color: core.ColorGray},
		SwapRate:        cfg.Animation.SwapRate,
		InvalidPick:     board.ParseInvalidPickPolicy(cfg.Selection.InvalidSecondPick),
		Blueprints:      lvl.Blueprints,
		Structures:      table,
	}
}

func (g *Game) placeHolders() {
	for _, h := range g.opts.Level.Holders {
		tmpl, ok := levels.Template(h.Template)
		if !ok {
			continue
		}
		if err := g.board.SetHolder(h.X, h.Y, tmpl); err != nil {
			g.logger.Warn("holder skipped", "x", h.X, "y", h.Y, "error", err)
		}
	}
}

// walkerEnabled reports whether the options, the config or the board's
// "walker" metadata ask for a walker.
func (g *Game) walkerEnabled() bool {
	if g.opts.Walker || g.opts.Config.Walker.Enabled {
		return true
	}
	on, err := strconv.ParseBool(g.opts.Level.Metadata["walker"])
	return err == nil && on
}

// spawnWalker places the walker on the configured cell, or on the first
// non-wall tile when that cell is unusable.
func (g *Game) spawnWalker() {
	if !g.walkerEnabled() {
		return
	}
	wc := g.opts.Config.Walker
	start := board.C(wc.StartX, wc.StartY)
	if t := g.board.TileAt(start.X, start.Y); t == nil || t.Type() == board.TileWall {
		found := false
		for _, t := range g.board.Grid().Tiles() {
			if t.Type() != board.TileWall {
				start, found = t.Pos(), true
				break
			}
		}
		if !found {
			g.logger.Warn("no room for the walker", "board", g.opts.Level.ID)
			return
		}
	}
	speed := wc.Speed
	if speed <= 0 {
		speed = config.DefaultSwapConfig().Walker.Speed
	}
	probe := wc.ProbeDistance
	if probe <= 0 {
		probe = config.DefaultSwapConfig().Walker.ProbeDistance
	}
	g.walker = board.NewWalker(g.board, walkerTemplate(), start, speed, probe, g.logger)
}

func walkerTemplate() *scene.Template {
	return &scene.Template{Name: "walker", Glyph: '@', Color: core.ColorYellow}
}

func (g *Game) firstSwappable() board.Coord {
	if g.board == nil {
		return board.Coord{}
	}
	grid := g.board.Grid()
	for y := grid.H - 1; y >= 0; y-- {
		for x := 0; x < grid.W; x++ {
			if t := grid.At(x, y); t != nil && t.Swappable() {
				return t.Pos()
			}
		}
	}
	return board.Coord{}
}

// Resize refits the camera to a new screen size without rebuilding the board.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	g.tooSmall = screenW < minScreenW || screenH < minScreenH
	g.camera = g.fitCamera(screenW, screenH)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.board == nil || !g.board.Ready() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(core.ActionBack) {
		g.board.Selection().Reset()
	}
	if in.Has(core.ActionSelect) {
		g.last = g.board.Select(g.board.TileAt(g.cursor.X, g.cursor.Y))
	}
	for _, c := range in.Clicks {
		g.click(c)
	}

	dt := g.runtime.TickDelta()
	completed := g.board.Tick(dt)
	if g.walker != nil {
		g.walker.Step(dt)
	}

	return core.StepResult{State: g.State(), SwapCompleted: completed}
}

// click hit-tests a screen cell against the board.
func (g *Game) click(c core.Click) {
	p := g.camera.ScreenToWorld(c.X, c.Y)
	if t := g.board.ResolveTile(g.graph.Pick(p)); t != nil {
		g.cursor = t.Pos()
	}
	g.last = g.board.Click(p)
	g.logger.Debug("click", "x", c.X, "y", c.Y, "world", p, "outcome", g.last)
}

// moveCursor applies arrow actions. Up moves toward higher grid rows, which
// are drawn nearer the top of the screen.
func (g *Game) moveCursor(in core.InputFrame) {
	grid := g.board.Grid()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y = core.Clamp(g.cursor.Y+1, 0, grid.H-1)
	case in.Has(core.ActionDown):
		g.cursor.Y = core.Clamp(g.cursor.Y-1, 0, grid.H-1)
	case in.Has(core.ActionLeft):
		g.cursor.X = core.Clamp(g.cursor.X-1, 0, grid.W-1)
	case in.Has(core.ActionRight):
		g.cursor.X = core.Clamp(g.cursor.X+1, 0, grid.W-1)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Swaps:     g.board.Swaps(),
		Animating: g.board.Animating(),
		Paused:    g.paused,
	}
}

// Board returns the current board. Nil before Reset.
func (g *Game) Board() *board.Board { return g.board }

// Graph returns the scene graph holding the board visuals.
func (g *Game) Graph() *scene.Graph { return g.graph }

// Camera returns the camera used for drawing and picking.
func (g *Game) Camera() board.Camera { return g.camera }

// Cursor returns the keyboard cursor cell.
func (g *Game) Cursor() board.Coord { return g.cursor }

// Walker returns the walker, or nil when disabled.
func (g *Game) Walker() *board.Walker { return g.walker }

// LastOutcome returns the result of the most recent selection input.
func (g *Game) LastOutcome() board.Outcome { return g.last }

// Err returns the board construction error from the last Reset, if any.
func (g *Game) Err() error { return g.buildErr }

// Level returns the board definition being played.
func (g *Game) Level() levels.Level { return g.opts.Level }
