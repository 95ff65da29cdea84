package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// WriteFile creates dir/name with content and returns its path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// WriteFiles creates test files with specific content and returns their
// paths by name.
func WriteFiles(t *testing.T, dir string, files map[string]string) map[string]string {
	t.Helper()
	paths := make(map[string]string, len(files))
	for name, content := range files {
		paths[name] = WriteFile(t, dir, name, []byte(content))
	}
	return paths
}

// TestConfigDir returns a fresh directory for the persisted documents.
func TestConfigDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "scribe")
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
