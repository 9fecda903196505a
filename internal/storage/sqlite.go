// Package storage provides a SQLite-backed catalog of imported board definitions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no board with the requested ID is stored.
var ErrNotFound = errors.New("storage: board not found")

// Store manages the SQLite database connection for the board catalog.
type Store struct {
	db *sql.DB
}

// BoardRecord is one imported board definition. Source holds the original
// YAML document so the board can be re-parsed with the current loader.
type BoardRecord struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Source    []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			width INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_boards_name ON boards(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBoard inserts a board or replaces the stored definition with the same ID.
// The original creation time is kept on replace.
func (s *Store) SaveBoard(rec BoardRecord) error {
	if rec.ID == "" {
		return errors.New("storage: board id is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO boards (id, name, width, height, source)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			width = excluded.width,
			height = excluded.height,
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.Name, rec.Width, rec.Height, string(rec.Source),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board %q: %w", rec.ID, err)
	}
	return nil
}

// Board returns the stored board with the given ID.
func (s *Store) Board(id string) (BoardRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, name, width, height, source, created_at, updated_at
		 FROM boards WHERE id = ?`,
		id,
	)
	rec, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BoardRecord{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return BoardRecord{}, fmt.Errorf("storage: cannot query board: %w", err)
	}
	return rec, nil
}

// ListBoards returns every stored board ordered by ID.
func (s *Store) ListBoards() ([]BoardRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, name, width, height, source, created_at, updated_at
		 FROM boards ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}
	defer rows.Close()

	var records []BoardRecord
	for rows.Next() {
		rec, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteBoard removes the board with the given ID.
func (s *Store) DeleteBoard(id string) error {
	result, err := s.db.Exec("DELETE FROM boards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete board: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// CountBoards returns the number of stored boards.
func (s *Store) CountBoards() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM boards").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count boards: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBoard(sc scanner) (BoardRecord, error) {
	var rec BoardRecord
	var source string
	var createdAt, updatedAt any
	if err := sc.Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &source, &createdAt, &updatedAt); err != nil {
		return BoardRecord{}, err
	}
	rec.Source = []byte(source)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
