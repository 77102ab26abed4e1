package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source represents a parsed source file.
type Source struct {
	Path     string
	Language string
	Content  []byte
}

// extensionToLanguage maps source file extensions to the language names the
// judge backend understands.
var extensionToLanguage = map[string]string{
	".c":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".cxx":  "cpp",
	".go":   "go",
	".java": "java",
	".js":   "javascript",
	".py":   "python",
	".rs":   "rust",
}

// ParseSource reads a source file and infers its language from the extension
// when none is given.
func ParseSource(path, language string) (*Source, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if language == "" {
		language = extensionToLanguage[strings.ToLower(filepath.Ext(path))]
	}
	if language == "" {
		return nil, errors.Errorf("cannot infer language from %s, use --language", path)
	}
	return &Source{Path: path, Language: language, Content: bytes}, nil
}

// ExpandPath expands a path to avoid `~`.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home dir")
	}
	return filepath.Join(home, path[2:]), nil
}
