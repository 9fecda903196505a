package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/swapgrid/internal/config"
	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap"
	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
	"github.com/vovakirdan/swapgrid/internal/platform/tui"
	"github.com/vovakirdan/swapgrid/internal/registry"
)

var (
	flagWalker bool
	flagASCII  bool
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board. Without a board a picker lists every
builtin, user-directory and imported board.

The argument may also be a registered variant (see 'swapgrid list').

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select the tile under the cursor
  Mouse click  - Select the clicked tile
  Esc          - Clear the selection
  P            - Pause
  R            - Rebuild the board
  Tab          - Back to the board picker
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  swapgrid play
  swapgrid play cross
  swapgrid play garden --walker
  swapgrid play --board single --swap-rate 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWalker, "walker", false, "Spawn the walker regardless of config")
	playCmd.Flags().BoolVar(&flagASCII, "ascii", false, "Draw with ASCII glyphs only")
}

// openLogFile returns a logger writing to ~/.swapgrid/swapgrid.log so log
// output does not corrupt the alternate screen.
func openLogFile() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, err
	}
	dir := filepath.Join(home, ".swapgrid")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "swapgrid.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f, "swapgrid")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	boardID := flagBoard
	if len(args) > 0 {
		boardID = args[0]
	}

	logger, closeLog, err := openLogFile()
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer closeLog()

	swapCfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	glyphs := swap.BlockGlyphs
	if flagASCII {
		glyphs = swap.ASCIIGlyphs
	}

	catalog, store := openCatalog(logger)
	if store != nil {
		defer store.Close()
	}
	factory := gameFactory(swapCfg, logger, flagWalker, glyphs)

	if boardID == "" {
		return tui.RunSession(catalog, factory, cfg, logger)
	}

	game, err := resolveGame(catalog, boardID, swapCfg, logger, glyphs)
	if err != nil {
		return err
	}
	return tui.Run(game, cfg, logger)
}

// resolveGame builds the game for a board ID or a registered variant name.
// Variants resolve to their builtin board and go through the configured factory.
func resolveGame(catalog *levels.Catalog, id string, swapCfg config.SwapConfig, logger *log.Logger, glyphs swap.Glyphs) (registry.Game, error) {
	walker := flagWalker
	levelID := id
	if v, ok := swap.LookupVariant(id); ok {
		levelID = v.LevelID
		walker = walker || v.Walker
	}

	lvl, err := catalog.Level(levelID)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'swapgrid boards list' to see boards; variants: %s)",
			err, strings.Join(registry.IDs(), ", "))
	}
	return gameFactory(swapCfg, logger, walker, glyphs)(lvl), nil
}
