// Package config loads the GBMS client configuration.
//
// Resolution order (highest to lowest precedence):
//  1. Command line flags (applied by the caller through Overrides)
//  2. GBMS_* environment variables
//  3. $GBMS_HOME/config.yaml
//  4. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	gerrors "github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/storage"
)

// Environment variables recognized by Load.
const (
	EnvHome      = "GBMS_HOME"
	EnvAPIURL    = "GBMS_API_URL"
	EnvLogLevel  = "GBMS_LOG_LEVEL"
	EnvLogFormat = "GBMS_LOG_FORMAT"
	EnvTimeout   = "GBMS_TIMEOUT"
	EnvMetrics   = "GBMS_METRICS_FILE"
	EnvOTLP      = "GBMS_OTLP_ENDPOINT"
)

// FileName is the configuration file name inside the home directory.
const FileName = "config.yaml"

// DefaultBaseURL is the development backend origin.
const DefaultBaseURL = "http://127.0.0.1:5001/api"

// Authentication modes.
const (
	AuthModeDemo = "demo"
	AuthModeAPI  = "api"
)

// Token liveness checks.
const (
	TokenCheckNonEmpty = "nonempty"
	TokenCheckJWT      = "jwt"
)

// Config is the effective client configuration.
type Config struct {
	Home    string        `yaml:"-"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig configures local storage.
type StorageConfig struct {
	File     string `yaml:"file"`
	TokenKey string `yaml:"token_key"`
	UserKey  string `yaml:"user_key"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig selects how credentials are verified and tokens checked.
type AuthConfig struct {
	Mode       string `yaml:"mode"`
	TokenCheck string `yaml:"token_check"`
}

// MetricsConfig configures the Prometheus textfile written after each
// command. An empty File disables it.
type MetricsConfig struct {
	File string `yaml:"file,omitempty"`
}

// TracingConfig configures OTLP/HTTP trace export. An empty Endpoint
// disables it; a zero SampleRate samples everything.
type TracingConfig struct {
	Endpoint   string  `yaml:"endpoint,omitempty"`
	Insecure   bool    `yaml:"insecure,omitempty"`
	SampleRate float64 `yaml:"sample_rate,omitempty"`
}

// Overrides carries flag values. Empty fields are ignored.
type Overrides struct {
	BaseURL   string
	LogLevel  string
	LogFormat string
	AuthMode  string
	Timeout   time.Duration
}

// Default returns the built-in configuration rooted at home.
func Default(home string) *Config {
	return &Config{
		Home: home,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Storage: StorageConfig{
			File:     filepath.Join(home, storage.DefaultFileName),
			TokenKey: storage.KeyToken,
			UserKey:  storage.KeyUser,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Auth: AuthConfig{
			Mode:       AuthModeAPI,
			TokenCheck: TokenCheckNonEmpty,
		},
	}
}

// DefaultHome returns $GBMS_HOME, or ~/.gbms.
func DefaultHome(getenv func(string) string) string {
	if home := getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".gbms"
	}
	return filepath.Join(userHome, ".gbms")
}

// Path returns the configuration file path for home.
func Path(home string) string {
	return filepath.Join(home, FileName)
}

// Load builds the configuration for home. If file is empty the default
// config.yaml under home is used; a missing default file is not an error.
func Load(home, file string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if home == "" {
		home = DefaultHome(getenv)
	}

	cfg := Default(home)

	explicit := file != ""
	if !explicit {
		file = Path(home)
	}

	if err := cfg.loadFile(file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg.applyEnv(getenv)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gerrors.NewFileNotFoundError(file)
		}
		return nil, gerrors.Wrap(gerrors.ErrCodeConfigLoadFailed, fmt.Sprintf("failed to load %s", file), err).
			WithSuggestion("Check the YAML syntax of the configuration file")
	}

	return cfg.applyEnv(getenv)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) (*Config, error) {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := getenv(EnvOTLP); v != "" {
		c.Tracing.Endpoint = v
	}
	if v := getenv(EnvMetrics); v != "" {
		c.Metrics.File = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, gerrors.NewConfigInvalidError(fmt.Sprintf("%s=%q is not a duration", EnvTimeout, v))
		}
		c.API.Timeout = d
	}
	return c, nil
}

// Apply layers flag overrides on top of c.
func (c *Config) Apply(o Overrides) {
	if o.BaseURL != "" {
		c.API.BaseURL = o.BaseURL
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
	if o.AuthMode != "" {
		c.Auth.Mode = o.AuthMode
	}
	if o.Timeout > 0 {
		c.API.Timeout = o.Timeout
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return gerrors.NewConfigInvalidError(fmt.Sprintf("api.base_url %q must be an absolute URL", c.API.BaseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return gerrors.NewConfigInvalidError(fmt.Sprintf("api.base_url scheme %q is not http or https", u.Scheme))
	}

	if c.API.Timeout < 0 {
		return gerrors.NewConfigInvalidError("api.timeout must not be negative")
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return gerrors.NewConfigInvalidError("tracing.sample_rate must be between 0 and 1")
	}

	switch c.Auth.Mode {
	case AuthModeDemo, AuthModeAPI:
	default:
		return gerrors.NewConfigInvalidError(fmt.Sprintf("auth.mode %q must be %q or %q", c.Auth.Mode, AuthModeDemo, AuthModeAPI))
	}

	switch c.Auth.TokenCheck {
	case TokenCheckNonEmpty, TokenCheckJWT:
	default:
		return gerrors.NewConfigInvalidError(fmt.Sprintf("auth.token_check %q must be %q or %q", c.Auth.TokenCheck, TokenCheckNonEmpty, TokenCheckJWT))
	}

	if strings.TrimSpace(c.Storage.TokenKey) == "" || strings.TrimSpace(c.Storage.UserKey) == "" {
		return gerrors.NewConfigInvalidError("storage.token_key and storage.user_key must not be empty")
	}
	if c.Storage.TokenKey == c.Storage.UserKey {
		return gerrors.NewConfigInvalidError("storage.token_key and storage.user_key must differ")
	}

	return nil
}

// StorageFile returns the storage file path, resolving relative paths
// against the home directory.
func (c *Config) StorageFile() string {
	if c.Storage.File == "" {
		return filepath.Join(c.Home, storage.DefaultFileName)
	}
	if filepath.IsAbs(c.Storage.File) {
		return c.Storage.File
	}
	return filepath.Join(c.Home, c.Storage.File)
}

// MetricsFile returns the metrics textfile path, or "" when disabled.
func (c *Config) MetricsFile() string {
	if c.Metrics.File == "" || filepath.IsAbs(c.Metrics.File) {
		return c.Metrics.File
	}
	return filepath.Join(c.Home, c.Metrics.File)
}

// Save writes c to $GBMS_HOME/config.yaml.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Home, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Home, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(Path(c.Home), data, 0o600)
}
