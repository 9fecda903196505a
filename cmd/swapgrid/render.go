package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap"
)

var flagRenderBlocks bool

var renderCmd = &cobra.Command{
	Use:   "render [board]",
	Short: "Print a board as ASCII",
	Long: `Build a board without a terminal UI and print it to stdout.

Walls are drawn as '#', normal tiles as '.', empty tiles as blanks,
structures with their own glyphs and borders with '+', '-' and '|'.

Examples:
  swapgrid render cross
  swapgrid render --board garden --blocks
  swapgrid render single --config ./no-borders.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&flagRenderBlocks, "blocks", false, "Use box-drawing glyphs instead of ASCII")
}

func runRender(_ *cobra.Command, args []string) error {
	boardID := flagBoard
	if len(args) > 0 {
		boardID = args[0]
	}
	if boardID == "" {
		return errors.New("render needs a board ID")
	}

	logger, err := newLogger(os.Stderr, "swapgrid")
	if err != nil {
		return err
	}
	swapCfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog, store := openCatalog(logger)
	if store != nil {
		defer store.Close()
	}
	glyphs := swap.ASCIIGlyphs
	if flagRenderBlocks {
		glyphs = swap.BlockGlyphs
	}
	g, err := resolveGame(catalog, boardID, swapCfg, logger, glyphs)
	if err != nil {
		return err
	}
	game := g.(*swap.Game)
	game.Reset(core.RuntimeConfig{ScreenW: 200, ScreenH: 100, TickRate: flagFPS})
	if err := game.Err(); err != nil {
		return fmt.Errorf("board %s: %w", boardID, err)
	}

	fmt.Println(game.Snapshot())
	return nil
}
