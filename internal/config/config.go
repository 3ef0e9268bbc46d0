// Package config defines the tasktracker configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config is the top-level configuration.
type Config struct {
	DataDir  string        `yaml:"data_dir"`
	LogLevel string        `yaml:"log_level"`
	Storage  StorageConfig `yaml:"storage"`
	Persist  PersistConfig `yaml:"persist"`
}

// StorageConfig selects and configures the blob store.
type StorageConfig struct {
	Backend string       `yaml:"backend"` // file, redis, sqlite, mysql or memory
	Redis   RedisConfig  `yaml:"redis"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
	MySQL   MySQLConfig  `yaml:"mysql"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	// URL is a redis:// URL or "host:port,password=...,ssl=true".
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path string `yaml:"path"` // defaults to <data_dir>/tasks.db
}

// MySQLConfig configures the mysql backend.
type MySQLConfig struct {
	DSN string `yaml:"dsn"` // e.g. user:pass@tcp(127.0.0.1:3306)/tasktracker
}

// PersistConfig tunes saving.
type PersistConfig struct {
	SaveTimeout time.Duration `yaml:"save_timeout"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: BackendFile,
			Redis: RedisConfig{
				URL:    "redis://localhost:6379/0",
				Prefix: "tasktracker:",
			},
		},
		Persist: PersistConfig{
			SaveTimeout: 2 * time.Second,
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tasktracker", "config.yaml")
}

// Load reads the YAML config at path on top of the defaults, then applies
// environment overrides. A missing file at the default location is not an
// error; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides are command-line values that win over the file and the
// environment. Empty fields are ignored.
type Overrides struct {
	DataDir  string
	Backend  string
	LogLevel string
}

// LoadWith is Load followed by the overrides in o.
func LoadWith(path string, o Overrides) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TASKTRACKER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TASKTRACKER_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("TASKTRACKER_REDIS_URL"); v != "" {
		c.Storage.Redis.URL = v
	}
	if v := os.Getenv("TASKTRACKER_MYSQL_DSN"); v != "" {
		c.Storage.MySQL.DSN = v
	}
	if v := os.Getenv("TASKTRACKER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		c.LogLevel = "debug"
	}
}

// Validate checks the config for values no backend can work with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.DataDir == "" && c.Storage.SQLite.Path == "" {
			return fmt.Errorf("data_dir is required for the %s backend", c.Storage.Backend)
		}
	case BackendRedis:
		if c.Storage.Redis.URL == "" {
			return fmt.Errorf("storage.redis.url is required for the redis backend")
		}
	case BackendMySQL:
		if c.Storage.MySQL.DSN == "" {
			return fmt.Errorf("storage.mysql.dsn is required for the mysql backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want file, redis, sqlite, mysql or memory)", c.Storage.Backend)
	}
	if c.Persist.SaveTimeout <= 0 {
		return fmt.Errorf("persist.save_timeout must be positive")
	}
	return nil
}

// SQLitePath returns the sqlite database path, defaulting into DataDir.
func (c *Config) SQLitePath() string {
	if c.Storage.SQLite.Path != "" {
		return c.Storage.SQLite.Path
	}
	return filepath.Join(c.DataDir, "tasks.db")
}

// LogPath is where the TUI writes its log.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "tasktracker.log")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tasktracker")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasktracker"
	}
	return filepath.Join(home, ".local", "share", "tasktracker")
}
