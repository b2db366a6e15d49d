package testsupport

import (
	"context"
	"os"
	"testing"

	"bilrost/internal/config"
	"bilrost/internal/favorites"
)

// MustOpenFavorites opens a favorites.Store for tests and registers cleanup.
func MustOpenFavorites(t testing.TB, cfg *config.Config) *favorites.Store {
	t.Helper()

	store, err := favorites.Open(cfg)
	if err != nil {
		t.Fatalf("favorites.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddWorkspace creates dir and registers it under name.
func AddWorkspace(t testing.TB, store *favorites.Store, name, dir string) *favorites.Workspace {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	ws, err := store.Add(context.Background(), name, dir)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return ws
}
