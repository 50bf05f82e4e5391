// Package help stores help topics in SQLite and looks them up by keyword.
package help

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no topic answers to a keyword.
var ErrNotFound = errors.New("help not found")

const schema = `
CREATE TABLE IF NOT EXISTS help (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS help_hook (
	hook    TEXT NOT NULL PRIMARY KEY,
	help_id INTEGER NOT NULL REFERENCES help(id)
);
`

// Store is a SQLite-backed help index.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the tables if needed. Use
// ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("help database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Every connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create help schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed inserts entries, replacing whatever topic previously owned a hook.
func (s *Store) Seed(ctx context.Context, entries []*Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		res, err := tx.ExecContext(ctx, `INSERT INTO help (title, body) VALUES (?, ?)`, e.Title, e.Body)
		if err != nil {
			return fmt.Errorf("insert help %q: %w", e.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert help %q: %w", e.Title, err)
		}
		for _, hook := range e.Hooks {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO help_hook (hook, help_id) VALUES (?, ?)
				 ON CONFLICT(hook) DO UPDATE SET help_id = excluded.help_id`,
				strings.ToLower(strings.TrimSpace(hook)), id)
			if err != nil {
				return fmt.Errorf("insert hook %q: %w", hook, err)
			}
		}
	}
	return tx.Commit()
}

// Lookup returns the topic a keyword hooks into.
func (s *Store) Lookup(ctx context.Context, keyword string) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT h.title, h.body
		   FROM help h
		   JOIN help_hook k ON k.help_id = h.id
		  WHERE k.hook = ?`,
		strings.ToLower(strings.TrimSpace(keyword)),
	).Scan(&e.Title, &e.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("query help %q: %w", keyword, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT hook FROM help_hook
		  WHERE help_id = (SELECT help_id FROM help_hook WHERE hook = ?)
		  ORDER BY hook`,
		strings.ToLower(strings.TrimSpace(keyword)))
	if err != nil {
		return Entry{}, fmt.Errorf("query hooks %q: %w", keyword, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var hook string
		if err := rows.Scan(&hook); err != nil {
			return Entry{}, fmt.Errorf("scan hook: %w", err)
		}
		e.Hooks = append(e.Hooks, hook)
	}
	return e, rows.Err()
}
