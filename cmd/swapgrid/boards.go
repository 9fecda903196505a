package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
	"github.com/vovakirdan/swapgrid/internal/storage"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Manage the board catalog",
	Long: `Boards are looked up in three places, first match wins:

  1. builtin boards compiled into the binary
  2. YAML files under --boards-dir (default ~/.swapgrid/boards)
  3. boards imported into the catalog database (--db)

Examples:
  swapgrid boards list
  swapgrid boards import ./ring.yaml
  swapgrid boards show ring
  swapgrid boards rm ring`,
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards from every source",
	Args:  cobra.NoArgs,
	RunE:  runBoardsList,
}

var boardsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Validate board files and store them in the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBoardsImport,
}

var boardsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a board definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardsShow,
}

var boardsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an imported board from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardsRm,
}

func init() {
	boardsCmd.AddCommand(boardsListCmd, boardsImportCmd, boardsShowCmd, boardsRmCmd)
}

func runBoardsList(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "swapgrid")
	if err != nil {
		return err
	}
	catalog, store := openCatalog(logger)
	if store != nil {
		defer store.Close()
	}

	entries, err := catalog.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No boards found.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, e := range entries {
		if len(e.Level.ID) > maxIDLen {
			maxIDLen = len(e.Level.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %-7s  %s\n", maxIDLen, "ID", "Size", "Tiles", "Source", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %-7s  %s\n", maxIDLen, "--", "----", "-----", "------", "----")
	for _, e := range entries {
		size := fmt.Sprintf("%dx%d", e.Level.Width, e.Level.Height)
		fmt.Printf("  %-*s  %-7s  %-5d  %-7s  %s\n", maxIDLen, e.Level.ID, size, e.Level.TileCount(), e.Source, e.Level.Name)
	}
	return nil
}

func runBoardsImport(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var errs []error
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lvl, err := levels.Parse(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		rec := storage.BoardRecord{
			ID:     lvl.ID,
			Name:   lvl.Name,
			Width:  lvl.Width,
			Height: lvl.Height,
			Source: data,
		}
		if err := store.SaveBoard(rec); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Printf("Imported %s (%dx%d) from %s\n", lvl.ID, lvl.Width, lvl.Height, path)
	}
	return errors.Join(errs...)
}

func runBoardsShow(_ *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, "swapgrid")
	if err != nil {
		return err
	}
	catalog, store := openCatalog(logger)
	if store != nil {
		defer store.Close()
	}

	lvl, err := catalog.Level(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", lvl.ID, lvl.Name)
	fmt.Printf("Size:   %dx%d (%d tiles)\n", lvl.Width, lvl.Height, lvl.TileCount())
	fmt.Printf("Source: %s\n", lvl.FilePath)

	if len(lvl.Layout) > 0 {
		fmt.Println()
		for _, row := range lvl.Layout {
			fmt.Printf("  %s\n", row)
		}
	}

	if len(lvl.Structures) > 0 {
		fmt.Println()
		fmt.Println("Structures:")
		for _, s := range lvl.Structures {
			fmt.Printf("  %c  %s\n", s.Char, s.Template)
		}
	}

	if n := len(lvl.Blueprints); n > 0 {
		fmt.Printf("\nBlueprints: %d\n", n)
	}

	if len(lvl.Holders) > 0 {
		fmt.Println()
		fmt.Println("Holders:")
		for _, h := range lvl.Holders {
			fmt.Printf("  (%d,%d)  %s\n", h.X, h.Y, h.Template)
		}
	}

	if len(lvl.Metadata) > 0 {
		keys := make([]string, 0, len(lvl.Metadata))
		for k := range lvl.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, lvl.Metadata[k])
		}
	}
	return nil
}

func runBoardsRm(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteBoard(args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}
