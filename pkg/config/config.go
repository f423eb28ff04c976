// Package config loads Kochwerk settings from a TOML file.
//
// Configuration lives at ~/.config/kochwerk/config.toml (or under
// $XDG_CONFIG_HOME when set). Every field is optional; unset fields keep
// the built-in defaults, so an empty or absent file is perfectly valid.
//
// Example file:
//
//	[defaults]
//	level = 5
//	max_level = 8
//	map = "bessel"
//	style = "simple"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	host = "0.0.0.0"
//	port = 8080
//
//	[archive]
//	uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "kochwerk"

// Cache backend names accepted in the [cache] section.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds every user-tunable setting.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Archive  ArchiveConfig  `toml:"archive"`
}

// DefaultsConfig overrides the pipeline defaults for new runs. MaxLevel
// lowers the subdivision ceiling below the built-in cap; vertex counts
// grow as 4^level, so shared deployments set this to keep requests cheap.
type DefaultsConfig struct {
	Level    int     `toml:"level"`
	MaxLevel int     `toml:"max_level"`
	Map      string  `toml:"map"`
	Style    string  `toml:"style"`
	Format   string  `toml:"format"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
}

// CacheConfig selects and configures the stage cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file, redis, or none
	Dir           string `toml:"dir"`     // file backend only; empty means ~/.cache/kochwerk
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ArchiveConfig configures the MongoDB figure archive. An empty URI
// disables archiving.
type ArchiveConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Archive: ArchiveConfig{
			Database:   appName,
			Collection: "figures",
		},
	}
}

// Path returns the config file location using XDG conventions
// (~/.config/kochwerk/config.toml).
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

// Load reads the TOML file at path on top of the defaults. A missing file
// is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads the config from the standard location.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return Load(path)
}

// Validate checks cross-field constraints the TOML decoder cannot.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("unknown cache backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Defaults.MaxLevel < 0 {
		return fmt.Errorf("max_level must not be negative: %d", c.Defaults.MaxLevel)
	}
	return nil
}
