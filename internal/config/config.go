// Package config handles the XDG configuration directory and settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"todo/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvFile holds optional KEY=value settings inside the config dir.
	EnvFile = ".env"

	// DatabaseFile is the default SQLite database filename.
	DatabaseFile = "todo.db"
)

// Settings keys, read from the environment or the .env file.
const (
	EnvDatabase        = "TODO_DB"
	EnvDefaultPriority = "TODO_DEFAULT_PRIORITY"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives diagnostics. Use Log to read it.
	Logger *slog.Logger

	// env holds values loaded from the .env file.
	env map[string]string
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// A .env file in the directory is loaded when present.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	env, err := godotenv.Read(filepath.Join(dir, EnvFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", EnvFile, err)
		}
		env = map[string]string{}
	}

	return &Config{
		Dir:    dir,
		Logger: discard,
		env:    env,
	}, nil
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

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return discard
	}
	return c.Logger
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Get returns a setting. A non-empty process environment value wins over
// the .env file.
func (c *Config) Get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return c.env[key]
}

// DatabasePath returns the SQLite database path.
func (c *Config) DatabasePath() string {
	if p := c.Get(EnvDatabase); p != "" {
		return p
	}
	return filepath.Join(c.Dir, DatabaseFile)
}

// DefaultPriority returns the priority given to new tasks when none is
// requested. Falls back to medium when unset.
func (c *Config) DefaultPriority() (task.Priority, error) {
	v := c.Get(EnvDefaultPriority)
	if v == "" {
		return task.Medium, nil
	}
	p, err := task.ParsePriority(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", EnvDefaultPriority, err)
	}
	return p, nil
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
