// Package config holds the runtime settings of the location server
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Transport names accepted by the serve command
const (
	TransportLine = "line"
	TransportMCP  = "mcp"
)

// EnvPrefix is prepended to environment variable overrides, e.g.
// LOCATION_LOG_LEVEL.
const EnvPrefix = "LOCATION"

// Config represents the server configuration
type Config struct {
	// Transport selects the stdio protocol: "line" or "mcp"
	Transport string `mapstructure:"transport"`

	// Gazetteer is an optional YAML or TOML file extending the built-in places
	Gazetteer string `mapstructure:"gazetteer"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"log-level"`

	// LogFormat is "text" or "json"
	LogFormat string `mapstructure:"log-format"`

	// Verbose forces debug logging
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers default values and environment lookup on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("transport", TransportLine)
	v.SetDefault("gazetteer", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to decode config")
	}

	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportLine, TransportMCP:
	default:
		return pkgerrors.Errorf("unknown transport %q (expected %s or %s)", c.Transport, TransportLine, TransportMCP)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return pkgerrors.Errorf("unknown log format %q (expected text or json)", c.LogFormat)
	}
	return nil
}

// Level returns the effective log level
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the structured logger described by the config
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, pkgerrors.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// LoadEnvFiles loads KEY=VALUE pairs from the given .env files (default
// ".env") into the process environment. Missing files are ignored and
// variables already set are left alone.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return pkgerrors.Wrapf(err, "failed to load env file %s", path)
		}
	}
	return nil
}
