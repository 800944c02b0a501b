// Package config loads the tilery configuration file.
//
// Configuration lives at ~/.config/tilery/config.toml (or $TILERY_CONFIG).
// Every field has a sensible default; a missing file is not an error, so a
// fresh install works with zero setup.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tilery/tilery/pkg/errors"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "TILERY_CONFIG"

// Config is the full application configuration.
type Config struct {
	Board    BoardConfig    `toml:"board"`
	Share    ShareConfig    `toml:"share"`
	Server   ServerConfig   `toml:"server"`
	Autosave AutosaveConfig `toml:"autosave"`
	Export   ExportConfig   `toml:"export"`
}

// BoardConfig tunes board interaction.
type BoardConfig struct {
	// TouchUI enlarges hit targets for coarse pointers.
	TouchUI bool `toml:"touch_ui"`
}

// ShareConfig configures the share-server client.
type ShareConfig struct {
	// BaseURL is the share server the CLI talks to.
	BaseURL string `toml:"base_url"`
}

// ServerConfig configures the share server.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`

	// Store selects the backend: "memory", "file", "redis" or "null".
	Store string `toml:"store"`

	// Dir is the board directory for the file backend. Empty uses the
	// XDG data directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis store backend.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      duration `toml:"ttl"`
}

// AutosaveConfig tunes the TUI autosave debouncer.
type AutosaveConfig struct {
	Enabled bool     `toml:"enabled"`
	Delay   duration `toml:"delay"`
}

// ExportConfig sets image export defaults.
type ExportConfig struct {
	Dark  bool    `toml:"dark"`
	Scale float64 `toml:"scale"`
}

// duration wraps time.Duration for TOML string parsing ("500ms", "2h").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Share: ShareConfig{
			BaseURL: "http://localhost:8080",
		},
		Server: ServerConfig{
			Addr:  ":8080",
			Store: "memory",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Autosave: AutosaveConfig{
			Enabled: true,
			Delay:   duration{500 * time.Millisecond},
		},
		Export: ExportConfig{
			Scale: 1,
		},
	}
}

// Path returns the config file location: $TILERY_CONFIG if set, otherwise
// ~/.config/tilery/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tilery", "config.toml"), nil
}

// Load reads the configuration, merging the file over defaults.
// A missing file yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values the rest of the application assumes.
func (c Config) Validate() error {
	switch c.Server.Store {
	case "memory", "file", "redis", "null":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Server.Store)
	}

	if err := errors.ValidateBaseURL(c.Share.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "share.base_url")
	}

	if c.Autosave.Delay.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "autosave.delay cannot be negative")
	}
	if c.Export.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export.scale must be positive")
	}
	return nil
}
