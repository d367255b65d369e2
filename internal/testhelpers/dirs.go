// Package testhelpers provides common utilities for tests across packages.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// SplitterDir creates a temporary directory with the .splitter structure.
// Returns the temp dir root and the .splitter dir path.
// The temp dir is automatically cleaned up when the test completes.
func SplitterDir(t *testing.T) (tempDir, splitterDir string) {
	t.Helper()
	tempDir = t.TempDir()
	splitterDir = filepath.Join(tempDir, ".splitter")
	if err := os.MkdirAll(splitterDir, 0755); err != nil {
		t.Fatalf("failed to create splitter dir: %v", err)
	}
	return tempDir, splitterDir
}

// LayoutFile writes content to .splitter/layout.toml in a new temp dir.
// Returns the temp dir root and the layout file path.
func LayoutFile(t *testing.T, content string) (tempDir, path string) {
	t.Helper()
	tempDir, dir := SplitterDir(t)
	path = filepath.Join(dir, "layout.toml")
	WriteFile(t, path, content)
	return tempDir, path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
