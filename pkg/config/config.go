// Package config loads dominochain settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/dominochain/config.toml
//  3. DOMINOCHAIN_* environment variables
//
// Command line flags are applied by the CLI on top of the loaded [Config].
//
// # File format
//
//	[cache]
//	backend = "redis"          # file, none, redis or mongo
//	ttl = "72h"
//	redis_addr = "localhost:6379"
//
//	[solve]
//	timeout = "30s"
//	max_tiles = 40
//
//	[server]
//	addr = ":8080"
//
// # Environment
//
// Every key has an environment variable named after its section and key,
// for example DOMINOCHAIN_CACHE_BACKEND or DOMINOCHAIN_SOLVE_TIMEOUT.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/dominochain/pkg/cache"
	errs "github.com/matzehuels/dominochain/pkg/errors"
)

const (
	// AppName names the config and cache directories.
	AppName = "dominochain"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "DOMINOCHAIN_"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Config holds all settings.
type Config struct {
	Cache  CacheConfig  `toml:"cache" envPrefix:"CACHE_"`
	Solve  SolveConfig  `toml:"solve" envPrefix:"SOLVE_"`
	Server ServerConfig `toml:"server" envPrefix:"SERVER_"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend string   `toml:"backend" env:"BACKEND"`
	Dir     string   `toml:"dir" env:"DIR"`
	TTL     Duration `toml:"ttl" env:"TTL"`

	// Prefix scopes keys so several deployments can share one backend.
	Prefix string `toml:"prefix" env:"PREFIX"`

	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB"`

	MongoURI        string `toml:"mongo_uri" env:"MONGO_URI"`
	MongoDatabase   string `toml:"mongo_database" env:"MONGO_DATABASE"`
	MongoCollection string `toml:"mongo_collection" env:"MONGO_COLLECTION"`
}

// SolveConfig bounds searches.
type SolveConfig struct {
	Timeout    Duration `toml:"timeout" env:"TIMEOUT"`
	SkipFilter bool     `toml:"skip_filter" env:"SKIP_FILTER"`
	MaxTiles   int      `toml:"max_tiles" env:"MAX_TILES"`
	Jobs       int      `toml:"jobs" env:"JOBS"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr" env:"ADDR"`
	RequestTimeout Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// Defaults.
const (
	DefaultServerAddr     = ":8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxTiles       = errs.DefaultMaxTiles
	DefaultJobs           = 4
)

// Default returns the built-in settings. The cache directory is resolved
// from the environment; if no home directory is known the cache is disabled.
func Default() Config {
	cfg := Config{
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration(cache.TTLChain),
		},
		Solve: SolveConfig{
			MaxTiles: DefaultMaxTiles,
			Jobs:     DefaultJobs,
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			RequestTimeout: Duration(DefaultRequestTimeout),
		},
	}
	if dir, err := CacheDir(); err == nil {
		cfg.Cache.Dir = dir
	} else {
		cfg.Cache.Backend = cache.BackendNone
	}
	return cfg
}

// Load reads the config file at path and applies environment overrides.
//
// An empty path means [DefaultPath]; a missing default file is not an error,
// a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		err := decodeFile(path, &cfg)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	backends := []string{cache.BackendFile, cache.BackendNone, cache.BackendRedis, cache.BackendMongo}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend: %q (must be one of: %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend == cache.BackendFile && c.Cache.Dir == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Solve.Timeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "solve.timeout cannot be negative")
	}
	if c.Solve.Jobs < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "solve.jobs cannot be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.request_timeout cannot be negative")
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisAddr:       c.Cache.RedisAddr,
		RedisPassword:   c.Cache.RedisPassword,
		RedisDB:         c.Cache.RedisDB,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
}

// Keyer returns the cache keyer, scoped when a prefix is configured.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the config file path using the XDG standard
// (~/.config/dominochain/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// CacheDir returns the cache directory using the XDG standard (~/.cache/dominochain/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// =============================================================================
// Duration
// =============================================================================

// Duration is a time.Duration written as a Go duration string ("30s", "72h")
// in both the config file and the environment.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
