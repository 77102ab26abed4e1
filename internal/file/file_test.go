package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSourceInfersLanguage(t *testing.T) {
	tests := []struct {
		filename string
		language string
	}{
		{filename: "main.cpp", language: "cpp"},
		{filename: "main.cc", language: "cpp"},
		{filename: "main.py", language: "python"},
		{filename: "Main.java", language: "java"},
		{filename: "main.go", language: "go"},
		{filename: "main.rs", language: "rust"},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			path := writeTempFile(t, tc.filename, "content")
			source, err := ParseSource(path, "")
			require.NoError(t, err)
			assert.Equal(t, tc.language, source.Language)
			assert.Equal(t, "content", string(source.Content))
		})
	}
}

func TestParseSourceExplicitLanguageWins(t *testing.T) {
	path := writeTempFile(t, "main.txt", "print(1)")
	source, err := ParseSource(path, "python")
	require.NoError(t, err)
	assert.Equal(t, "python", source.Language)
}

func TestParseSourceUnknownExtension(t *testing.T) {
	path := writeTempFile(t, "main.txt", "x")
	_, err := ParseSource(path, "")
	require.Error(t, err)
}

func TestParseSourceMissingFile(t *testing.T) {
	_, err := ParseSource(filepath.Join(t.TempDir(), "absent.cpp"), "")
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/foo/bar")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "foo/bar"), expanded)

	unchanged, err := ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", unchanged)
}
