package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config, err := Parse(path)
	require.NoError(t, err)

	// The default file was written out.
	_, err = os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090/api", config.APIHost)
	assert.Equal(t, 10, config.RequestTimeout)
	assert.Equal(t, 1000, config.Judge.PollIntervalMs)
	assert.Equal(t, "cpp", config.Judge.DefaultLanguage)
}

func TestParseMergesDefaultsIntoPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_host":"https://judge.example.com/api"}`), 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "https://judge.example.com/api", config.APIHost)
	// Everything the file omits falls back to the defaults.
	assert.Equal(t, 10, config.RequestTimeout)
	require.NotNil(t, config.Chat)
	require.NotNil(t, config.Judge)
}

func TestParseExpandsPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := Parse(path)
	require.NoError(t, err)
	for _, p := range []string{config.Chat.Database, config.Chat.PromptHistory, config.CredentialsFile} {
		assert.False(t, strings.HasPrefix(p, "~"), "path %s was not expanded", p)
	}
}

func TestParseRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Parse(path)
	require.Error(t, err)
}
