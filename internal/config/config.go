// Package config loads waypoint server configuration.
//
// Values are resolved in three layers: built-in defaults, an optional TOML
// file, and environment variables. Command-line flags are applied on top by
// the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/waypoint/pkg/errors"
)

// Config aggregates application configuration values.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Graph   GraphConfig   `toml:"graph"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Tracing TracingConfig `toml:"tracing"`
}

// ServerConfig governs HTTP server behaviour.
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	IdleTimeout     Duration `toml:"idle_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	PublicDir       string   `toml:"public_dir"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GraphConfig locates the graph document served by the API.
type GraphConfig struct {
	// Source is a file path or an http(s) URL.
	Source string `toml:"source"`
}

// LogConfig controls structured logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json|logfmt
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// TracingConfig toggles span export to stderr.
type TracingConfig struct {
	Enabled bool `toml:"enabled"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8000
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultPublicDir       = "public"
	defaultGraphSource     = "data/graph.json"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Environment variables that override file values.
const (
	EnvPort      = "PORT"
	EnvGraph     = "WAYPOINT_GRAPH"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
	EnvMetrics   = "WAYPOINT_METRICS"
	EnvTracing   = "WAYPOINT_TRACING"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     Duration{defaultReadTimeout},
			WriteTimeout:    Duration{defaultWriteTimeout},
			IdleTimeout:     Duration{defaultIdleTimeout},
			ShutdownTimeout: Duration{defaultShutdownTimeout},
			AllowedOrigins:  []string{"*"},
			PublicDir:       defaultPublicDir,
		},
		Graph:   GraphConfig{Source: defaultGraphSource},
		Log:     LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// path is non-empty) and the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides values from the environment. getenv is injected for
// tests.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s value %q", EnvPort, v)
		}
		c.Server.Port = port
	}
	if v := getenv(EnvGraph); v != "" {
		c.Graph.Source = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := getenv(EnvMetrics); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s value %q", EnvMetrics, v)
		}
		c.Metrics.Enabled = enabled
	}
	if v := getenv(EnvTracing); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s value %q", EnvTracing, v)
		}
		c.Tracing.Enabled = enabled
	}
	return nil
}

// Validate reports the first invalid value as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New(errors.ErrCodeInvalidConfig, "port %d is out of range", c.Server.Port)
	}
	timeouts := []struct {
		name string
		d    Duration
	}{
		{"read_timeout", c.Server.ReadTimeout},
		{"write_timeout", c.Server.WriteTimeout},
		{"idle_timeout", c.Server.IdleTimeout},
		{"shutdown_timeout", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.d.Duration <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "server.%s must be positive, got %s", t.name, t.d)
		}
	}
	if err := errors.ValidateSource(c.Graph.Source); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "graph.source")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	if _, err := ParseFormatter(c.Log.Format); err != nil {
		return err
	}
	return nil
}

// ParseFormatter maps a log.format value to a charmbracelet/log formatter.
func ParseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "log.format must be text, json or logfmt, got %q", format)
	}
}
