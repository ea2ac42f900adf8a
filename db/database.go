package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"hangman/log"
	"hangman/models"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed word list. The game only ever reads it at startup.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the database location for the current environment.
func DefaultPath() string {
	// Vercel only allows writes under /tmp
	if os.Getenv("VERCEL") == "1" {
		return "/tmp/hangman.db"
	}
	return "./hangman.db"
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		log.Warn("couldn't enable WAL mode: %v", err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		log.Warn("couldn't set busy timeout: %v", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			word TEXT UNIQUE NOT NULL,
			definition TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, q := range schema {
		if _, err := conn.ExecContext(ctx, q); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	log.Debug("Database opened at %s", path)
	return &Store{db: conn, path: path}, nil
}

// Import inserts entries, replacing the definition of words already present.
func (s *Store) Import(ctx context.Context, entries []models.WordEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO words (word, definition) VALUES (?, ?)
	ON CONFLICT(word) DO UPDATE SET definition = excluded.definition;
	`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, q, e.Word, e.Definition); err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", e.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(entries), nil
}

// Words returns every entry in insertion order.
func (s *Store) Words(ctx context.Context) ([]models.WordEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, definition FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var entries []models.WordEntry
	for rows.Next() {
		var e models.WordEntry
		if err := rows.Scan(&e.Word, &e.Definition); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	return entries, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
