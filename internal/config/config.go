// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// StateFile is the stored selection and view criteria filename.
	StateFile = "state.json"

	// DefaultServerURL is the gateway base URL used when neither the
	// --server flag nor TASKDECK_SERVER is set.
	DefaultServerURL = "http://127.0.0.1:8000/api"

	// ServerEnv is the environment variable overriding the gateway URL.
	ServerEnv = "TASKDECK_SERVER"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the gateway base URL.
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Force skips confirmation prompts for destructive operations.
	Force bool
}

// New creates a new Config with the default or specified config directory
// and server URL. If configDir is empty, uses XDG_CONFIG_HOME/taskdeck or
// $HOME/.config/taskdeck. If serverURL is empty, uses TASKDECK_SERVER or
// the built-in default.
func New(configDir, serverURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	url := serverURL
	if url == "" {
		url = os.Getenv(ServerEnv)
	}
	if url == "" {
		url = DefaultServerURL
	}
	return &Config{Dir: dir, ServerURL: url}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// StatePath returns the path to the stored selection/criteria file.
func (c *Config) StatePath() string {
	return filepath.Join(c.Dir, StateFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
