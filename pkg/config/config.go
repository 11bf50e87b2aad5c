// Package config loads stitchrow settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/stitchrow/config.toml (falling back to
// ~/.config/stitchrow/config.toml) unless a path is given explicitly. A
// missing file is not an error: [Load] returns [Default] in that case.
// Command-line flags override whatever the file sets.
//
//	[palette]
//	purl = "#383838"
//	knit = "#ffffff"
//	tolerance = 0
//
//	[source]
//	cell_size = 1
//
//	[output]
//	format = "text"
//
//	[cache]
//	backend = "file"      # file | redis | none
//	redis_url = "redis://localhost:6379/0"
//	namespace = ""
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
//	max_upload_bytes = 10485760
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/render"
	"github.com/matzehuels/stitchrow/pkg/source"
)

const appName = "stitchrow"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full set of file-backed settings.
type Config struct {
	Palette source.Palette `toml:"palette"`
	Source  SourceConfig   `toml:"source"`
	Output  OutputConfig   `toml:"output"`
	Cache   CacheConfig    `toml:"cache"`
	Server  ServerConfig   `toml:"server"`
}

// SourceConfig holds loader settings.
type SourceConfig struct {
	CellSize int `toml:"cell_size"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format string `toml:"format"`
}

// CacheConfig selects and configures the chart cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	RedisURL  string   `toml:"redis_url"`
	Namespace string   `toml:"namespace"`
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
}

// Duration is a time.Duration that reads from TOML strings like "12h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	opts := source.DefaultOptions()
	return Config{
		Palette: opts.Palette,
		Source:  SourceConfig{CellSize: opts.CellSize},
		Output:  OutputConfig{Format: render.FormatText},
		Cache: CacheConfig{
			Backend:  BackendFile,
			RedisURL: "redis://localhost:6379/0",
			TTL:      Duration{30 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 10 << 20,
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path on top of [Default]. An empty path means
// the default location. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Decode(data, cfg)
}

// Decode parses TOML data on top of base and validates the result.
func Decode(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	opts := c.SourceOptions()
	if err := opts.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "palette")
	}
	if err := render.ValidateFormat(c.Output.Format); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "output")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server max_upload_bytes must be positive")
	}
	return nil
}

// SourceOptions converts the palette and source sections to loader options.
func (c Config) SourceOptions() source.Options {
	return source.Options{Palette: c.Palette, CellSize: c.Source.CellSize}
}

// Encode renders c as TOML, e.g. for `stitchrow config init`.
func Encode(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
