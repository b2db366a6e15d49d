package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"bilrost/internal/config"
)

// Store manages the favorites list backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the favorites database under the state dir.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.FavoritesPath())
}

// OpenPath opens the database file at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add registers the workspace rooted at dir. An empty name registers the
// workspace by URL only.
func (s *Store) Add(ctx context.Context, name, dir string) (*Workspace, error) {
	name = strings.TrimSpace(name)
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path: %w", err)
	}
	fileURL, err := FileURL(absDir)
	if err != nil {
		return nil, err
	}

	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ws := range existing {
		if ws.URL == fileURL {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, absDir)
		}
		if name != "" && ws.Name == name {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicate, name)
		}
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO workspaces (name, path, url, created_at) VALUES (?, ?, ?, ?)`,
		nullableString(name), absDir, fileURL, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert workspace: %w", err)
	}
	return &Workspace{Name: name, Path: absDir, URL: fileURL, CreatedAt: now}, nil
}

// Get returns the workspace registered under identifier (name or URL).
func (s *Store) Get(ctx context.Context, identifier string) (*Workspace, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, path, url, created_at FROM workspaces WHERE name = ? OR url = ? ORDER BY id LIMIT 1`,
		identifier, identifier,
	)
	ws, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// List returns every registered workspace in registration order.
func (s *Store) List(ctx context.Context) ([]Workspace, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, path, url, created_at FROM workspaces ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var out []Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, rows.Err()
}

// Remove forgets the workspace registered under identifier (name or URL).
func (s *Store) Remove(ctx context.Context, identifier string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workspaces WHERE name = ? OR url = ?`, identifier, identifier)
	if err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, identifier)
	}
	return nil
}

// RemoveAll forgets every workspace and reports how many were removed.
func (s *Store) RemoveAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workspaces`)
	if err != nil {
		return 0, fmt.Errorf("remove workspaces: %w", err)
	}
	return res.RowsAffected()
}

func scanWorkspace(scanner interface{ Scan(dest ...any) error }) (*Workspace, error) {
	var (
		name       sql.NullString
		path       string
		fileURL    string
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&name, &path, &fileURL, &createdRaw); err != nil {
		return nil, err
	}
	ws := &Workspace{Name: name.String, Path: path, URL: fileURL}
	if createdRaw.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, createdRaw.String); err == nil {
			ws.CreatedAt = ts
		}
	}
	return ws, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
