package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/pkg/errors"

	"github.com/agiantii/bcoj/internal/file"
)

var defaultConfig = Config{
	APIHost:        "http://localhost:9090/api",
	RequestTimeout: 10,

	Chat: &ChatConfig{
		Database:      "~/.bcoj/chats.db",
		PromptHistory: "~/.bcoj/chat.history",
	},

	Judge: &JudgeConfig{
		PollIntervalMs:  1000,
		DefaultLanguage: "cpp",
	},

	CredentialsFile: "~/.bcoj/credentials.json",
}

// Config holds configuration for the bcoj tool.
type Config struct {
	// Base URL of the judge backend, up to and including the /api prefix.
	APIHost string `json:"api_host"`
	// Timeout in seconds for plain request/response calls. Streaming calls
	// and the poll loop carry no client-side timeout.
	RequestTimeout int `json:"request_timeout"`
	// Where we persist the login token and user info.
	CredentialsFile string `json:"credentials_file"`

	Chat  *ChatConfig  `json:"chat"`
	Judge *JudgeConfig `json:"judge"`
}

// ChatConfig holds configuration for bcoj chat.
type ChatConfig struct {
	// The SQLite database where we cache chat transcripts.
	Database string `json:"database"`
	// The readline history file of the chat prompt.
	PromptHistory string `json:"prompt_history"`
}

// JudgeConfig holds configuration for bcoj submit.
type JudgeConfig struct {
	// Period of the submission status poll loop.
	PollIntervalMs int `json:"poll_interval_ms"`
	// Language used when it cannot be inferred from the file extension.
	DefaultLanguage string `json:"default_language"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	// Fill in anything the file does not set.
	if err := mergo.Merge(config, defaultConfig); err != nil {
		return nil, errors.Wrap(err, "merging defaults")
	}

	expandedDatabasePath, err := file.ExpandPath(config.Chat.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding chat database path")
	}
	config.Chat.Database = expandedDatabasePath

	expandedHistoryPath, err := file.ExpandPath(config.Chat.PromptHistory)
	if err != nil {
		return nil, errors.Wrap(err, "expanding prompt history path")
	}
	config.Chat.PromptHistory = expandedHistoryPath

	expandedCredentialsPath, err := file.ExpandPath(config.CredentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "expanding credentials file path")
	}
	config.CredentialsFile = expandedCredentialsPath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
