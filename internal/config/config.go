// Package config handles the XDG configuration directory and runtime settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename (google backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (google backend).
	TokenFile = "token.json"
)

// Backends.
const (
	BackendREST   = "rest"
	BackendGoogle = "google"
)

// Environment variables. They override config.toml.
const (
	EnvAPIURL   = "TODO_API_URL"
	EnvBackend  = "TODO_BACKEND"
	EnvLocale   = "TODO_LOCALE"
	EnvAPIToken = "TODO_API_TOKEN"
	EnvLogFile  = "TODO_LOG_FILE"
)

const (
	defaultLocale         = "en-US"
	defaultBreakerTimeout = 30 * time.Second
)

// DotEnvFile is loaded from the working directory before reading the
// environment. Variables already set are not overridden.
var DotEnvFile = ".env"

// Config holds configuration paths and settings.
// It is built once at startup and not modified afterwards.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// APIURL is the base URL of the task API (rest backend).
	APIURL string

	// Backend selects the service implementation: "rest" or "google".
	Backend string

	// Locale is the BCP 47 tag used for date rendering.
	Locale string

	// APIToken is an optional bearer token for the rest backend.
	APIToken string

	// LogFile, if set, receives logs instead of stderr.
	LogFile string

	// BreakerFailures enables the circuit breaker when > 0.
	BreakerFailures uint32

	// BreakerTimeout is how long an open breaker rejects calls.
	BreakerTimeout time.Duration
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	APIURL          string `toml:"api_url"`
	Backend         string `toml:"backend"`
	Locale          string `toml:"locale"`
	APIToken        string `toml:"api_token"`
	LogFile         string `toml:"log_file"`
	BreakerFailures uint32 `toml:"breaker_failures"`
	BreakerTimeout  string `toml:"breaker_timeout"`
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// New does not read any files; see Load.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:            dir,
		Backend:        BackendREST,
		Locale:         defaultLocale,
		BreakerTimeout: defaultBreakerTimeout,
	}, nil
}

// Load builds a Config from defaults, config.toml, the .env file and the
// environment, in increasing order of precedence.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", DotEnvFile, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	var fc fileConfig
	if _, err := toml.DecodeFile(c.FilePath(), &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	setIfNotEmpty(&c.APIURL, fc.APIURL)
	setIfNotEmpty(&c.Backend, fc.Backend)
	setIfNotEmpty(&c.Locale, fc.Locale)
	setIfNotEmpty(&c.APIToken, fc.APIToken)
	setIfNotEmpty(&c.LogFile, fc.LogFile)
	c.BreakerFailures = fc.BreakerFailures
	if fc.BreakerTimeout != "" {
		d, err := time.ParseDuration(fc.BreakerTimeout)
		if err != nil {
			return fmt.Errorf("invalid breaker_timeout: %w", err)
		}
		c.BreakerTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() {
	setIfNotEmpty(&c.APIURL, os.Getenv(EnvAPIURL))
	setIfNotEmpty(&c.Backend, os.Getenv(EnvBackend))
	setIfNotEmpty(&c.Locale, os.Getenv(EnvLocale))
	setIfNotEmpty(&c.APIToken, os.Getenv(EnvAPIToken))
	setIfNotEmpty(&c.LogFile, os.Getenv(EnvLogFile))
}

func setIfNotEmpty(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Validate checks settings that can be rejected without network access.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST, BackendGoogle:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if c.BreakerTimeout < 0 {
		return fmt.Errorf("invalid breaker_timeout: %s", c.BreakerTimeout)
	}
	return nil
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

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
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
