// Package config loads application settings from defaults, an optional TOML
// file, and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
)

// Config holds everything needed to start the application.
type Config struct {
	Storage      string `toml:"storage" env:"SHOPPINGLIST_STORAGE"`           // "sqlite" or "memory"
	DatabasePath string `toml:"database_path" env:"SHOPPINGLIST_DB_PATH"`     // SQLite file, ignored for memory storage
	LogPath      string `toml:"log_path" env:"SHOPPINGLIST_LOG_PATH"`         // Optional log file in addition to stderr
	LogLevel     string `toml:"log_level" env:"SHOPPINGLIST_LOG_LEVEL"`       // debug, info, warn or error
	Language     string `toml:"language" env:"SHOPPINGLIST_LANG"`             // BCP 47 tag for messages
	MetricsAddr  string `toml:"metrics_addr" env:"SHOPPINGLIST_METRICS_ADDR"` // Serve /metrics here when set
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Storage:      constants.StorageSQLite,
		DatabasePath: constants.DefaultDatabaseFile,
		LogLevel:     constants.DefaultLogLevel,
		Language:     constants.DefaultLanguage,
	}
}

// Load builds a Config from defaults, then the TOML file at path, then the
// environment. An empty path skips the file. A missing file is only an error
// when required is true.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || required {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Storage {
	case constants.StorageSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			return fmt.Errorf("config: database_path is required for sqlite storage")
		}
	case constants.StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	return nil
}

// Write saves c as TOML, creating or truncating path.
func (c Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
