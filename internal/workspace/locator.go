package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"bilrost/internal/favorites"
)

// ErrWorkspaceNotFound is returned when no registered workspace encloses a directory.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// NotFoundError records the directory the search started from.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no registered workspace contains %s (register one with `bilrost add-workspace`)", e.Dir)
}

func (e *NotFoundError) Unwrap() error { return ErrWorkspaceNotFound }

// Registry lists registered workspaces.
type Registry interface {
	List(ctx context.Context) ([]favorites.Workspace, error)
}

// Locator resolves workspace identifiers against a Registry.
type Locator struct {
	Registry Registry
}

// NewLocator builds a Locator over registry.
func NewLocator(registry Registry) *Locator {
	return &Locator{Registry: registry}
}

// Resolve returns explicit unchanged when set. Otherwise it locates the
// workspace enclosing dir.
func (l *Locator) Resolve(ctx context.Context, explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return l.FindIdentifier(ctx, dir)
}

// FindIdentifier walks upward from startingDir and returns the identifier of
// the deepest registered workspace root on the way.
func (l *Locator) FindIdentifier(ctx context.Context, startingDir string) (string, error) {
	ws, err := l.Find(ctx, startingDir)
	if err != nil {
		return "", err
	}
	return ws.Identifier(), nil
}

// Find is FindIdentifier returning the whole registry entry.
func (l *Locator) Find(ctx context.Context, startingDir string) (*favorites.Workspace, error) {
	registered, err := l.list(ctx)
	if err != nil {
		return nil, err
	}
	roots := make(map[string]int, len(registered))
	for i, ws := range registered {
		root := filepath.Clean(ws.Path)
		if _, seen := roots[root]; !seen {
			roots[root] = i
		}
	}

	dir := filepath.Clean(startingDir)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i, ok := roots[dir]; ok {
			ws := registered[i]
			return &ws, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, &NotFoundError{Dir: filepath.Clean(startingDir)}
}

// Lookup returns the registered workspace addressed by identifier (name or URL).
func (l *Locator) Lookup(ctx context.Context, identifier string) (*favorites.Workspace, error) {
	registered, err := l.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, ws := range registered {
		if ws.Matches(identifier) {
			ws := ws
			return &ws, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", favorites.ErrNotFound, identifier)
}

func (l *Locator) list(ctx context.Context) ([]favorites.Workspace, error) {
	if l == nil || l.Registry == nil {
		return nil, errors.New("workspace registry unavailable")
	}
	registered, err := l.Registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registered workspaces: %w", err)
	}
	return registered, nil
}
