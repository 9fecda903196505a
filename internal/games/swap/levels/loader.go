// Package levels provides board definition loading for the swap game.
// This package depends on board but board does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap/board"
	"github.com/vovakirdan/swapgrid/internal/games/swap/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned when no board matches an ID.
var ErrNotFound = errors.New("levels: board not found")

// ErrUnknownTemplate is returned when a board references a structure
// template missing from the palette.
var ErrUnknownTemplate = errors.New("levels: unknown structure template")

// Level represents a complete board definition.
type Level struct {
	ID         string
	Name       string
	Width      int
	Height     int
	Layout     []string
	Structures []formats.Structure
	Blueprints [][]string
	Holders    []formats.Holder
	Metadata   map[string]string
	FilePath   string
}

// Parse decodes a board definition from raw bytes. Any structure template it
// names must exist in the palette.
func Parse(data []byte) (Level, error) {
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, err
	}
	lvl := Level{
		ID:         parsed.ID,
		Name:       parsed.Name,
		Width:      parsed.Width,
		Height:     parsed.Height,
		Layout:     parsed.Layout,
		Structures: parsed.Structures,
		Blueprints: parsed.Blueprints,
		Holders:    parsed.Holders,
		Metadata:   parsed.Metadata,
	}
	if _, err := lvl.StructureTable(); err != nil {
		return Level{}, err
	}
	for _, h := range lvl.Holders {
		if _, ok := Template(h.Template); !ok {
			return Level{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, h.Template)
		}
	}
	return lvl, nil
}

// StructureTable resolves the level's structure characters against the
// palette. The first mapping for a character wins.
func (l *Level) StructureTable() (*board.MappingTable[board.StructureMapping], error) {
	table := board.NewMappingTable[board.StructureMapping]()
	for _, s := range l.Structures {
		tmpl, ok := Template(s.Template)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, s.Template)
		}
		table.Register(s.Char, board.StructureMapping{
			Template:    tmpl,
			CustomScale: core.V3(s.Scale[0], s.Scale[1], s.Scale[2]),
		})
	}
	return table, nil
}

// TileCount returns the number of tiles the board will hold.
func (l *Level) TileCount() int {
	if len(l.Layout) == 0 {
		return l.Width * l.Height
	}
	return len(board.Parse(l.Layout, board.TileTable()))
}

// Loader handles loading boards from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader reading boards from a directory.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: dir}
}

// Builtin returns a loader over the boards compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// Root returns the directory the loader reads from.
func (l *Loader) Root() string {
	return l.root
}

// LoadAll recursively scans and loads all board files.
// Invalid files are skipped. Returns boards sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single board file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	lvl.FilePath = path.Join(l.root, p)
	return lvl, nil
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all board IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
