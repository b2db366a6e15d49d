package assetdef_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"bilrost/internal/assetdef"
	"bilrost/internal/backend"
)

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
  // main mesh
  "main": "duck/duck.fbx",
  "dependencies": ["duck/albedo.png", "/resources/shared/rig.fbx",],
  "tags": ["prop"],
  /* free text */
  "comment": "a duck",
}`)
	def, err := assetdef.Parse(data, assetdef.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := backend.AssetDefinition{
		Main:         "/resources/duck/duck.fbx",
		Dependencies: []string{"/resources/duck/albedo.png", "/resources/shared/rig.fbx"},
		Tags:         []string{"prop"},
		Comment:      "a duck",
	}
	if !reflect.DeepEqual(def, want) {
		t.Fatalf("Parse = %#v, want %#v", def, want)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte("main: level\\map.bin\ndependencies:\n  - level/lights.bin\nsemantics: [environment]\n")
	def, err := assetdef.Parse(data, assetdef.FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Main != "/resources/level/map.bin" {
		t.Fatalf("unexpected main %q", def.Main)
	}
	if !reflect.DeepEqual(def.Dependencies, []string{"/resources/level/lights.bin"}) {
		t.Fatalf("unexpected dependencies %v", def.Dependencies)
	}
	if !reflect.DeepEqual(def.Semantics, []string{"environment"}) {
		t.Fatalf("unexpected semantics %v", def.Semantics)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format assetdef.Format
	}{
		{"json", `{"mian": "x"}`, assetdef.FormatJSON},
		{"yaml", "mian: x\n", assetdef.FormatYAML},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := assetdef.Parse([]byte(tc.data), tc.format); err == nil {
				t.Fatal("expected unknown key error")
			}
		})
	}
}

func TestParseEmptyDefinition(t *testing.T) {
	for _, format := range []assetdef.Format{assetdef.FormatJSON, assetdef.FormatYAML} {
		def, err := assetdef.Parse([]byte("  \n"), format)
		if err != nil {
			t.Fatalf("Parse(%d): %v", format, err)
		}
		if def.Main != "" || def.Dependencies != nil {
			t.Fatalf("expected empty definition, got %#v", def)
		}
	}
}

func TestReadFilePicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "duck.yaml")
	if err := os.WriteFile(yamlPath, []byte("main: duck.fbx\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	def, err := assetdef.ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if def.Main != "/resources/duck.fbx" {
		t.Fatalf("unexpected main %q", def.Main)
	}

	if _, err := assetdef.ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
