// Package config loads kegg settings from a TOML file and the environment.
//
// Precedence, lowest first: built-in defaults, the config file, KEGG_*
// environment variables, command-line flags (applied by the CLI).
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/keggrest/kegg/pkg/cache"
	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/integrations/kegg"
)

const appName = "kegg"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config holds all settings shared by the CLI and the gateway.
type Config struct {
	BaseURL    string        `toml:"base_url"`
	Timeout    time.Duration `toml:"timeout"`
	Retries    int           `toml:"retries"`
	RetryDelay time.Duration `toml:"retry_delay"`
	Cache      CacheConfig   `toml:"cache"`
	Server     ServerConfig  `toml:"server"`
}

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// ServerConfig configures the JSON gateway.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:    kegg.DefaultBaseURL,
		Timeout:    30 * time.Second,
		Retries:    1,
		RetryDelay: time.Second,
		Cache: CacheConfig{
			Backend:       BackendFile,
			TTL:           24 * time.Hour,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kegg/config.toml, falling back to
// ~/.config/kegg/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/kegg, falling back to ~/.cache/kegg.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path over the defaults, then applies the
// environment. An empty path means [DefaultPath], which may be absent; an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.LoadFromEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFromEnv overrides fields from KEGG_* variables read through getenv.
func (c *Config) LoadFromEnv(getenv func(string) string) error {
	if v := getenv("KEGG_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if err := envDuration(getenv, "KEGG_TIMEOUT", &c.Timeout); err != nil {
		return err
	}
	if v := getenv("KEGG_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "KEGG_RETRIES: %q is not an integer", v)
		}
		c.Retries = n
	}
	if err := envDuration(getenv, "KEGG_RETRY_DELAY", &c.RetryDelay); err != nil {
		return err
	}
	if v := getenv("KEGG_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if err := envDuration(getenv, "KEGG_CACHE_TTL", &c.Cache.TTL); err != nil {
		return err
	}
	if v := getenv("KEGG_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := getenv("KEGG_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := getenv("KEGG_MONGO_URI"); v != "" {
		c.Cache.MongoURI = v
	}
	if v := getenv("KEGG_MONGO_DATABASE"); v != "" {
		c.Cache.MongoDatabase = v
	}
	if v := getenv("KEGG_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

func envDuration(getenv func(string) string, key string, dst *time.Duration) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "%s: %q is not a duration", key, v)
	}
	*dst = d
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := kerrors.ValidateURL(c.BaseURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 1 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "retries must be at least 1, got %d", c.Retries)
	}
	if c.RetryDelay < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "retry_delay cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis, BackendMongo:
	default:
		return kerrors.New(kerrors.ErrCodeInvalidOption,
			"cache.backend %q (want %s, %s, %s or %s)", c.Cache.Backend, BackendNone, BackendFile, BackendRedis, BackendMongo)
	}
	return nil
}

// OpenCache opens the configured cache backend.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone, "":
		return cache.NewNullCache(), nil
	case BackendFile:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, err
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisAddr, appName+":")
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", c.RedisAddr, err)
		}
		return rc, nil
	case BackendMongo:
		mc, err := cache.NewMongoCache(ctx, c.MongoURI, c.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return mc, nil
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidOption, "unknown cache backend %q", c.Backend)
	}
}

// CacheDir returns the file cache directory, defaulted when unset.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return DefaultCacheDir()
}
