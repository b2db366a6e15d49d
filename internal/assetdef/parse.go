// Package assetdef reads asset definition files passed to create-asset.
//
// Definitions are authored either as JSONC (JSON with comments and trailing
// commas) or as YAML when the file ends in .yml or .yaml. The main resource
// and dependency list are canonicalized into /resources/ references before
// the definition is sent to the service.
package assetdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bilrost/internal/backend"
	"bilrost/internal/refs"
)

// Format selects the definition syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the syntax from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a definition and canonicalizes its references. Unknown keys
// are rejected.
func Parse(data []byte, format Format) (backend.AssetDefinition, error) {
	var def backend.AssetDefinition
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
			return backend.AssetDefinition{}, fmt.Errorf("parsing asset definition: %w", err)
		}
	default:
		stripped := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(stripped)) == 0 {
			break
		}
		dec := json.NewDecoder(bytes.NewReader(stripped))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return backend.AssetDefinition{}, fmt.Errorf("parsing asset definition: %w", err)
		}
	}
	return Canonicalize(def), nil
}

// ReadFile reads and parses the definition at path.
func ReadFile(path string) (backend.AssetDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return backend.AssetDefinition{}, fmt.Errorf("reading %s: %w", path, err)
	}
	def, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return backend.AssetDefinition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Canonicalize maps main and dependencies onto /resources/ references.
func Canonicalize(def backend.AssetDefinition) backend.AssetDefinition {
	fields := map[string]any{}
	if def.Main != "" {
		fields["main"] = def.Main
	}
	if len(def.Dependencies) > 0 {
		fields["dependencies"] = def.Dependencies
	}
	mapped := refs.ResourceRefsInObject(fields)
	if main, ok := mapped["main"].(string); ok {
		def.Main = main
	}
	if deps, ok := mapped["dependencies"].([]string); ok {
		def.Dependencies = deps
	}
	return def
}
