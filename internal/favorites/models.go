package favorites

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

var (
	// ErrNotFound is returned when no registered workspace matches an identifier.
	ErrNotFound = errors.New("workspace not registered")
	// ErrDuplicate is returned when a name or root path is already registered.
	ErrDuplicate = errors.New("workspace already registered")
)

// Workspace is a registered workspace root.
type Workspace struct {
	Name      string    `json:"name,omitempty"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Identifier returns the name used to address the workspace, falling back to
// its URL when no name was registered.
func (w Workspace) Identifier() string {
	if w.Name != "" {
		return w.Name
	}
	return w.URL
}

// Matches reports whether identifier names this workspace by name or URL.
func (w Workspace) Matches(identifier string) bool {
	return identifier != "" && (identifier == w.Name || identifier == w.URL)
}

// FileURL converts an absolute directory into its canonical file:// URL.
func FileURL(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		return "", fmt.Errorf("workspace path %q is not absolute", dir)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Clean(dir))}
	return u.String(), nil
}
