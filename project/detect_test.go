package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect_GoModule_ReadsModulePath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module github.com/acme/widget\n\ngo 1.21\n"), 0o644))
	sub := filepath.Join(root, "internal", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "x.go")
	require.NoError(t, os.WriteFile(file, []byte("package pkg"), 0o644))

	d := NewDetector()
	info, err := d.Detect(file)
	require.NoError(t, err)
	assert.Equal(t, "go", info.Type)
	assert.Equal(t, "github.com/acme/widget", info.Name)
	assert.Equal(t, root, info.RootPath)
}

func TestDetector_Detect_CargoToml_ExtractsPackageName(t *testing.T) {
	root := t.TempDir()
	cargo := "[package]\nname = \"my-crate\"\nversion = \"0.1.0\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(cargo), 0o644))

	d := NewDetector()
	info, err := d.Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "rust", info.Type)
	assert.Equal(t, "my-crate", info.Name)
}

func TestDetector_Detect_PackageJSON_ExtractsName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name": "widget-ui", "version": "1.0.0"}`), 0o644))

	d := NewDetector()
	info, err := d.Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "javascript", info.Type)
	assert.Equal(t, "widget-ui", info.Name)
}

func TestDetector_Detect_WalksUpFromNestedFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[project]\nname = \"mypkg\"\n"), 0o644))
	sub := filepath.Join(root, "src", "mypkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "main.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1"), 0o644))

	d := NewDetector()
	info, err := d.Detect(file)
	require.NoError(t, err)
	assert.Equal(t, "python", info.Type)
	assert.Equal(t, root, info.RootPath)
	assert.Equal(t, "mypkg", info.Name)
}

func TestDetector_Detect_NoMarkerFound_ReturnsUnknownAtGivenPath(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "isolated")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	d := NewDetector()
	info, err := d.Detect(sub)
	require.NoError(t, err)
	assert.Equal(t, "unknown", info.Type)
	assert.Equal(t, sub, info.RootPath)
}
