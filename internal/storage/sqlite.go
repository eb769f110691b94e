package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DefaultDBName is the database filename created under the data directory.
const DefaultDBName = "lists.db"

// SQLiteGateway stores blobs as rows of a single SQLite table.
type SQLiteGateway struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteGateway opens (creating if needed) the database at dbPath,
// enables WAL mode and runs migrations.
func NewSQLiteGateway(dbPath string, logger *zap.Logger) (*SQLiteGateway, error) {
	if dbPath == "" {
		return nil, errors.New("storage: database path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}

	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("storage: pragma %q: %w", p, err)
		}
	}

	g := &SQLiteGateway{db: db, logger: logger}
	if err := g.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: migration: %w", err)
	}
	return g, nil
}

// Close closes the underlying database connection.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) migrate() error {
	_, err := g.db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key        TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)
	return err
}

// Exists reports whether a row is stored under key.
func (g *SQLiteGateway) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	var one int
	err := g.db.QueryRowContext(ctx, `SELECT 1 FROM blobs WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", key, err)
	}
	return true, nil
}

// Read returns the content stored under key, or ErrNotFound.
func (g *SQLiteGateway) Read(ctx context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	var content string
	err := g.db.QueryRowContext(ctx, `SELECT content FROM blobs WHERE key = ?`, key).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("reading %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return content, nil
}

// Write upserts the content stored under key.
func (g *SQLiteGateway) Write(ctx context.Context, key, content string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO blobs (key, content, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		key, content,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	g.logger.Debug("blob written", zap.String("key", key), zap.Int("bytes", len(content)))
	return nil
}
