package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting generated output in tests
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains every expected fragment
func (fa *FileAssertions) AssertFileContains(relativePath string, fragments ...string) *FileAssertions {
	fa.t.Helper()
	content := fa.read(relativePath)
	for _, want := range fragments {
		if !strings.Contains(content, want) {
			fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", relativePath, want, content)
		}
	}
	return fa
}

// AssertFileNotContains validates that a file contains none of the fragments
func (fa *FileAssertions) AssertFileNotContains(relativePath string, fragments ...string) *FileAssertions {
	fa.t.Helper()
	content := fa.read(relativePath)
	for _, bad := range fragments {
		if strings.Contains(content, bad) {
			fa.t.Errorf("Expected file %s not to contain %q", relativePath, bad)
		}
	}
	return fa
}

// GetFileContent reads and returns the content of a file
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	return fa.read(relativePath)
}

func (fa *FileAssertions) read(relativePath string) string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	// #nosec G304 -- test helper reading generated output
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}
