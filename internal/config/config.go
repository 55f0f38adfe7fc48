// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

// Package config loads service configuration from defaults, an optional
// YAML file, and command-line flags, in increasing order of precedence.
package config

import (
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config holds the full service configuration.
type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Session  SessionConfig  `koanf:"session"`
	Log      LogConfig      `koanf:"log"`
}

// HTTPConfig configures the public API server.
type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

// MetricsConfig configures the observability server.
// An empty address disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RedisConfig configures the Redis connection for session storage.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// SessionConfig configures the session cookie and lifetime.
type SessionConfig struct {
	CookieName string        `koanf:"cookie_name"`
	TTL        time.Duration `koanf:"ttl"`
	Secure     bool          `koanf:"secure"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Format string `koanf:"format"`
}

// defaults is the base configuration layer.
var defaults = map[string]any{
	"http.addr":           ":8080",
	"metrics.addr":        "127.0.0.1:9100",
	"database.url":        "postgres://localhost:5432/waveboard",
	"redis.addr":          "localhost:6379",
	"redis.password":      "",
	"redis.db":            0,
	"session.cookie_name": "wbsid",
	"session.ttl":         30 * 24 * time.Hour,
	"session.secure":      false,
	"log.format":          "json",
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped if path is empty), then the given flag set (skipped if nil;
// only flags changed from their defaults take effect).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, oops.Code("CONFIG_DEFAULTS_FAILED").Wrap(err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("http.addr is required")
	}
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	if c.Redis.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("redis.addr is required")
	}
	if c.Session.CookieName == "" {
		return oops.Code("CONFIG_INVALID").Errorf("session.cookie_name is required")
	}
	if c.Session.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("session.ttl must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}
