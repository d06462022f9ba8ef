// Package config handles the configuration directory, config.toml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "taskmaster"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// PrefsFile is the local key-value store filename.
	PrefsFile = "prefs.json"

	// EnvAPIURL overrides api_url from config.toml.
	EnvAPIURL = "TASKMASTER_API_URL"

	// EnvTimeout overrides timeout from config.toml.
	EnvTimeout = "TASKMASTER_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task server, e.g. http://host:8080/api.
	// Empty means not configured; there is no built-in default.
	APIURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	APIURL  string `toml:"api_url"`
	Timeout string `toml:"timeout"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskmaster or $HOME/.config/taskmaster.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// Load reads .env from the working directory, then config.toml, then the
// environment. Later sources win. A missing config.toml is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load(".env")

	if err := cfg.readFile(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	c.APIURL = strings.TrimSpace(fc.APIURL)
	if fc.Timeout != "" {
		d, err := parseTimeout(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		c.APIURL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", s)
	}
	return d, nil
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

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// PrefsPath returns the path to the local preferences store.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.Dir, PrefsFile)
}

// HasAPIURL reports whether a server address is configured.
func (c *Config) HasAPIURL() bool {
	return strings.TrimSpace(c.APIURL) != ""
}
