// swapgrid is a terminal tile-swap board: pick two tiles and watch them trade places.
//
// Usage:
//
//	swapgrid list                  - List registered game variants
//	swapgrid play [board]          - Play a board (picker if omitted)
//	swapgrid render <board>        - Print a board as ASCII
//	swapgrid boards list           - List boards from every source
//	swapgrid boards import <file>  - Store a board file in the catalog
//	swapgrid boards show <id>      - Print a board definition
//	swapgrid boards rm <id>        - Remove an imported board
//	swapgrid serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Engine config YAML
//	--board <id>          - Board to play or render
//	--db <path>           - Board catalog database (default: ~/.swapgrid/boards.db)
//	--log-level <level>   - debug, info, warn, error
//	--swap-rate <rate>    - Override animation.swap_rate
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/swapgrid/internal/config"
	"github.com/vovakirdan/swapgrid/internal/games/swap"
	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
	"github.com/vovakirdan/swapgrid/internal/registry"
	"github.com/vovakirdan/swapgrid/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagConfig    string
	flagBoard     string
	flagDBPath    string
	flagBoardsDir string
	flagLogLevel  string
	flagSwapRate  float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swapgrid",
	Short: "Swapgrid - swap tiles on a board in your terminal",
	Long: `Swapgrid builds a board of tiles from a text layout and lets you swap
any two swappable tiles with the keyboard or the mouse.

Available commands:
  list     - Show registered game variants
  play     - Play a board
  render   - Print a board as ASCII
  boards   - Manage the board catalog
  serve    - Start SSH server for remote play

Examples:
  swapgrid play
  swapgrid play cross
  swapgrid render garden
  swapgrid boards import ./my-board.yaml
  swapgrid serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBoard, "board", "", "Board ID")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.swapgrid/boards.db", "Path to board catalog database")
	rootCmd.PersistentFlags().StringVar(&flagBoardsDir, "boards-dir", "~/.swapgrid/boards", "Directory of board YAML files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Float64Var(&flagSwapRate, "swap-rate", 0, "Override animation.swap_rate (0 = use config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates a logger at the level chosen by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the engine config and applies flag overrides.
func loadConfig() (config.SwapConfig, error) {
	cfg, err := config.LoadSwap(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSwapRate != 0 {
		cfg.Animation.SwapRate = flagSwapRate
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// openCatalog builds the board catalog: builtin boards first, then the user
// directory, then boards imported into the database. The returned store is
// nil when the database cannot be opened.
func openCatalog(logger *log.Logger) (*levels.Catalog, *storage.Store) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("board database unavailable", "path", flagDBPath, "error", err)
		return levels.NewCatalog(levels.Builtin(), levels.NewLoader(expandHome(flagBoardsDir))), nil
	}
	return levels.NewCatalog(
		levels.Builtin(),
		levels.NewLoader(expandHome(flagBoardsDir)),
		levels.NewStoreSource(store),
	), store
}

// gameFactory creates swap games sharing one engine config.
func gameFactory(cfg config.SwapConfig, logger *log.Logger, walker bool, glyphs swap.Glyphs) func(levels.Level) registry.Game {
	return func(lvl levels.Level) registry.Game {
		return swap.New(swap.Options{
			Level:  lvl,
			Config: cfg,
			Logger: logger,
			Walker: walker,
			Glyphs: glyphs,
		})
	}
}
