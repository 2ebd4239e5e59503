package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists drawings in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("database path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS drawings (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0,
		properties TEXT NOT NULL DEFAULT '{}',
		owner TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Drawing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, x, y, properties, owner, created_at FROM drawings ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	var out []Drawing
	for rows.Next() {
		var (
			d       Drawing
			props   string
			created int64
		)
		if err := rows.Scan(&d.ID, &d.Type, &d.X, &d.Y, &props, &d.Owner, &created); err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		d.CreatedAt = time.Unix(0, created).UTC()
		if err := json.Unmarshal([]byte(props), &d.Properties); err != nil {
			return nil, fmt.Errorf("decode properties of %s: %w", d.ID, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Add(ctx context.Context, d Drawing) error {
	props, err := json.Marshal(nonNil(d.Properties))
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drawings (id, type, x, y, properties, owner, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Type, d.X, d.Y, string(props), d.Owner, d.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, p Patch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var (
		d     Drawing
		props string
	)
	err = tx.QueryRowContext(ctx, `SELECT x, y, properties FROM drawings WHERE id = ?`, id).
		Scan(&d.X, &d.Y, &props)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load drawing: %w", err)
	}
	if err := json.Unmarshal([]byte(props), &d.Properties); err != nil {
		return fmt.Errorf("decode properties of %s: %w", id, err)
	}

	p.apply(&d)
	encoded, err := json.Marshal(nonNil(d.Properties))
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE drawings SET x = ?, y = ?, properties = ? WHERE id = ?`,
		d.X, d.Y, string(encoded), id); err != nil {
		return fmt.Errorf("update drawing: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
