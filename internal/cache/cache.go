// Package cache is the local SQLite store behind the --reuse-last display
// mode: the last rendered table's rows and summary metadata are kept per
// command, so the table can be replayed without touching the chain. Absence
// or corruption of the store is recoverable: callers print the error and
// abort cleanly.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // sqlite driver
)

// ErrNoCachedResult is returned when --reuse-last runs before a command has
// ever populated the cache, or after the store was corrupted.
var ErrNoCachedResult = errors.New(
	"unable to retrieve cached table data; run the command once without --reuse-last first " +
		"(a corrupted cache can also cause this; re-running without --reuse-last rewrites it)")

// Store is a handle to the cache database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the cache database location under the XDG cache dir.
func DefaultPath() (string, error) {
	return xdg.CacheFile(filepath.Join("btcli", "btcli.db"))
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (
		command TEXT NOT NULL,
		key     TEXT NOT NULL,
		value   TEXT NOT NULL,
		PRIMARY KEY (command, key)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Column describes one column of a cached result table.
type Column struct {
	Name string
	// Type is the SQLite column type (TEXT, REAL, INTEGER).
	Type string
}

// SaveTable replaces the cached result table for the given command. Rows are
// stored both as a typed table (for the HTML export) and as JSON inside the
// metadata (for byte-identical terminal replay).
func (s *Store) SaveTable(command string, cols []Column, rows [][]interface{}) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	table := tableName(command)
	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
		return fmt.Errorf("failed to reset cache table: %w", err)
	}

	defs := make([]string, 0, len(cols))
	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	for _, c := range cols {
		defs = append(defs, fmt.Sprintf("%q %s", c.Name, c.Type))
		names = append(names, fmt.Sprintf("%q", c.Name))
		marks = append(marks, "?")
	}
	if _, err := tx.Exec(fmt.Sprintf(`CREATE TABLE %s (%s)`, table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create cache table: %w", err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(names, ", "), strings.Join(marks, ", "))
	for _, row := range rows {
		if _, err := tx.Exec(insert, row...); err != nil {
			return fmt.Errorf("failed to insert cache row: %w", err)
		}
	}
	return tx.Commit()
}

// SaveMetadata replaces the summary metadata for the given command.
func (s *Store) SaveMetadata(command string, meta map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck

	if _, err := tx.Exec(`DELETE FROM meta WHERE command = ?`, command); err != nil {
		return fmt.Errorf("failed to clear cache metadata: %w", err)
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (command, key, value) VALUES (?, ?, ?)`, command, k, v); err != nil {
			return fmt.Errorf("failed to write cache metadata: %w", err)
		}
	}
	return tx.Commit()
}

// Metadata returns the cached summary metadata for the given command, or
// ErrNoCachedResult when nothing has been cached.
func (s *Store) Metadata(command string) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM meta WHERE command = ?`, command)
	if err != nil {
		return nil, ErrNoCachedResult
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, ErrNoCachedResult
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil || len(meta) == 0 {
		return nil, ErrNoCachedResult
	}
	return meta, nil
}

// SaveRows stores rendered table rows in metadata as JSON under "rows".
func (s *Store) SaveRows(command string, meta map[string]string, rendered [][]string) error {
	encoded, err := json.Marshal(rendered)
	if err != nil {
		return fmt.Errorf("failed to encode cached rows: %w", err)
	}
	if meta == nil {
		meta = make(map[string]string)
	}
	meta["rows"] = string(encoded)
	return s.SaveMetadata(command, meta)
}

// Rows returns the rendered table rows cached for the given command along
// with the rest of the metadata.
func (s *Store) Rows(command string) ([][]string, map[string]string, error) {
	meta, err := s.Metadata(command)
	if err != nil {
		return nil, nil, err
	}
	encoded, ok := meta["rows"]
	if !ok {
		return nil, nil, ErrNoCachedResult
	}
	var rendered [][]string
	if err := json.Unmarshal([]byte(encoded), &rendered); err != nil {
		return nil, nil, ErrNoCachedResult
	}
	return rendered, meta, nil
}

// Table reads back the typed result table for the given command.
func (s *Store) Table(command string) ([]string, [][]string, error) {
	rows, err := s.db.Query(`SELECT * FROM ` + tableName(command))
	if err != nil {
		return nil, nil, ErrNoCachedResult
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, ErrNoCachedResult
	}
	var out [][]string
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		for i := range vals {
			vals[i] = new(sql.NullString)
		}
		if err := rows.Scan(vals...); err != nil {
			return nil, nil, ErrNoCachedResult
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			ns := v.(*sql.NullString)
			if ns.Valid {
				row[i] = ns.String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, ErrNoCachedResult
	}
	return cols, out, nil
}

func tableName(command string) string {
	// Command names are internal constants, but quote-proof them anyway.
	return "tbl_" + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, command)
}
