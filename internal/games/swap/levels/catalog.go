package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/vovakirdan/swapgrid/internal/storage"
)

// Source is one place boards can come from.
type Source interface {
	Name() string
	LoadAll() ([]Level, error)
	LoadByID(id string) (Level, error)
}

// Name implements Source.
func (l *Loader) Name() string {
	if l.root == "builtin" {
		return "builtin"
	}
	return "dir"
}

// BoardStore is the subset of the sqlite catalog used to read imported boards.
type BoardStore interface {
	ListBoards() ([]storage.BoardRecord, error)
	Board(id string) (storage.BoardRecord, error)
}

// StoreSource serves boards imported into the sqlite catalog.
type StoreSource struct {
	store BoardStore
}

// NewStoreSource wraps an opened board store.
func NewStoreSource(store BoardStore) *StoreSource {
	return &StoreSource{store: store}
}

// Name implements Source.
func (s *StoreSource) Name() string { return "db" }

// LoadAll parses every stored board. Records that no longer parse are skipped.
func (s *StoreSource) LoadAll() ([]Level, error) {
	records, err := s.store.ListBoards()
	if err != nil {
		return nil, err
	}
	levels := make([]Level, 0, len(records))
	for _, rec := range records {
		lvl, err := Parse(rec.Source)
		if err != nil {
			continue
		}
		lvl.FilePath = "db:" + rec.ID
		levels = append(levels, lvl)
	}
	return levels, nil
}

// LoadByID parses the stored board with the given ID.
func (s *StoreSource) LoadByID(id string) (Level, error) {
	rec, err := s.store.Board(id)
	if errors.Is(err, storage.ErrNotFound) {
		return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Level{}, err
	}
	lvl, err := Parse(rec.Source)
	if err != nil {
		return Level{}, fmt.Errorf("levels: stored board %s: %w", id, err)
	}
	lvl.FilePath = "db:" + rec.ID
	return lvl, nil
}

// Entry is a catalog listing row.
type Entry struct {
	Level  Level
	Source string
}

// Catalog resolves boards across sources. Earlier sources shadow later ones
// with the same ID.
type Catalog struct {
	sources []Source
}

// NewCatalog creates a catalog. Nil sources are dropped.
func NewCatalog(sources ...Source) *Catalog {
	c := &Catalog{}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Entries lists every visible board sorted by ID. A user directory that does
// not exist contributes nothing.
func (c *Catalog) Entries() ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry
	for _, src := range c.sources {
		levels, err := src.LoadAll()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("levels: listing %s boards: %w", src.Name(), err)
		}
		for _, lvl := range levels {
			if seen[lvl.ID] {
				continue
			}
			seen[lvl.ID] = true
			entries = append(entries, Entry{Level: lvl, Source: src.Name()})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Level.ID < entries[j].Level.ID
	})
	return entries, nil
}

// Level returns the first board with the given ID.
func (c *Catalog) Level(id string) (Level, error) {
	for _, src := range c.sources {
		lvl, err := src.LoadByID(id)
		if err == nil {
			return lvl, nil
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Level{}, err
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
