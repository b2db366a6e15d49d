package pushfolder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"bilrost/internal/backend"
	"bilrost/internal/favorites"
	"bilrost/internal/logging"
	"bilrost/internal/refs"
)

// metadataDir holds workspace bookkeeping and is never versioned.
const metadataDir = ".bilrost"

// ErrEmptyFolder is returned when the folder holds no versionable files.
var ErrEmptyFolder = errors.New("folder contains no files")

// WorkspaceLookup finds a registered workspace by identifier.
type WorkspaceLookup interface {
	Lookup(ctx context.Context, identifier string) (*favorites.Workspace, error)
}

// Request names the asset, the folder and the workspace to push into.
type Request struct {
	Identifier string
	Reference  string
	// Dir is the absolute folder path.
	Dir string
}

// Result summarizes a completed push.
type Result struct {
	Asset     string   `json:"asset"`
	Created   bool     `json:"created"`
	Resources []string `json:"resources"`
	Added     []string `json:"added,omitempty"`
	Removed   []string `json:"removed,omitempty"`
	Push      any      `json:"push,omitempty"`
}

// Workflow runs folder pushes against the service.
type Workflow struct {
	Actions    backend.Actions
	Workspaces WorkspaceLookup
	Logger     *slog.Logger
}

// Run pushes req.Dir as asset req.Reference.
func (w *Workflow) Run(ctx context.Context, req Request) (*Result, error) {
	logger := logging.NewComponentLogger(w.Logger, "pushfolder")

	ws, err := w.Workspaces.Lookup(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace %q: %w", req.Identifier, err)
	}
	root := filepath.Clean(ws.Path)
	dir := filepath.Clean(req.Dir)
	if !within(root, dir) {
		return nil, fmt.Errorf("folder %s is outside workspace %s", dir, root)
	}

	resources, err := collectResources(root, dir)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFolder, dir)
	}

	asset := refs.AssetRef(req.Reference)
	result := &Result{Asset: asset, Resources: resources}

	existing, err := w.Actions.GetAsset(ctx, req.Identifier, asset)
	switch {
	case backend.IsNotFound(err):
		logger.Info("creating folder asset",
			logging.String(logging.FieldEventType, "folder_asset_create"),
			logging.String("asset", asset),
			logging.Int("resources", len(resources)),
		)
		if _, err := w.Actions.CreateAsset(ctx, req.Identifier, asset, backend.AssetDefinition{
			Dependencies: resources,
			Comment:      "Folder asset " + asset,
		}); err != nil {
			return nil, fmt.Errorf("create asset %s: %w", asset, err)
		}
		result.Created = true
		result.Added = resources
	case err != nil:
		return nil, fmt.Errorf("get asset %s: %w", asset, err)
	default:
		folderPrefix := refs.ResourceRef(relSlash(root, dir)) + "/"
		if dir == root {
			folderPrefix = refs.ResourcePrefix
		}
		add, remove := diffDependencies(dependenciesOf(existing), resources, folderPrefix)
		result.Added, result.Removed = add, remove
		if len(add) > 0 || len(remove) > 0 {
			logger.Info("updating folder asset dependencies",
				logging.String(logging.FieldEventType, "folder_asset_update"),
				logging.String("asset", asset),
				logging.Int("added", len(add)),
				logging.Int("removed", len(remove)),
			)
			if _, err := w.Actions.UpdateAsset(ctx, req.Identifier, asset, backend.AssetUpdate{Add: add, Remove: remove}); err != nil {
				return nil, fmt.Errorf("update asset %s: %w", asset, err)
			}
		}
	}

	if _, err := w.Actions.Stage(ctx, req.Identifier, asset); err != nil {
		return nil, fmt.Errorf("stage asset %s: %w", asset, err)
	}
	pushed, err := w.Actions.Push(ctx, req.Identifier, "Folder asset "+asset)
	if err != nil {
		return nil, fmt.Errorf("push asset %s: %w", asset, err)
	}
	result.Push = pushed
	return result, nil
}

func collectResources(root, dir string) ([]string, error) {
	var resources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == metadataDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		resources = append(resources, refs.ResourceRef(relSlash(root, path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(resources)
	return resources, nil
}

// dependenciesOf extracts the dependency list from a GetAsset reply.
func dependenciesOf(asset any) []string {
	m, ok := asset.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := m["dependencies"].([]any)
	if !ok {
		return nil
	}
	deps := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			deps = append(deps, s)
		}
	}
	return deps
}

// diffDependencies returns the files missing from current and the current
// dependencies under folderPrefix that no longer exist on disk.
func diffDependencies(current, files []string, folderPrefix string) (add, remove []string) {
	have := make(map[string]struct{}, len(current))
	for _, dep := range current {
		have[dep] = struct{}{}
	}
	want := make(map[string]struct{}, len(files))
	for _, file := range files {
		want[file] = struct{}{}
		if _, ok := have[file]; !ok {
			add = append(add, file)
		}
	}
	for _, dep := range current {
		if !strings.HasPrefix(dep, folderPrefix) {
			continue
		}
		if _, ok := want[dep]; !ok {
			remove = append(remove, dep)
		}
	}
	return add, remove
}

func within(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
