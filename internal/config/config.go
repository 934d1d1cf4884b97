// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: defaultConfig()
//  2. Config File: config.yaml (or CONFIG_PATH)
//  3. Environment Variables: explicit mapping in envTransformFunc
//
// Config is immutable after LoadWithKoanf() and safe for concurrent reads.
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Sync     SyncConfig     `koanf:"sync"`
	Store    StoreConfig    `koanf:"store"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CatalogConfig describes the third-party catalog API.
type CatalogConfig struct {
	// ListingURL is the newest-first "recently updated" listing; ?page=N is appended.
	ListingURL string `koanf:"listing_url" validate:"required"`

	// DetailURL is the detail endpoint base; /{slug} is appended.
	DetailURL string `koanf:"detail_url" validate:"required"`

	Timeout   time.Duration `koanf:"timeout" validate:"gte=0"`
	UserAgent string        `koanf:"user_agent"`

	// RequestsPerSecond caps the request rate with a token bucket (0 = off).
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=0"`

	// CircuitBreaker wraps the client in a breaker shared across runs.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// SyncConfig controls the synchronization engine.
type SyncConfig struct {
	MaxPages       int           `koanf:"max_pages" validate:"min=1,max=1000"`
	RetryAttempts  int           `koanf:"retry_attempts" validate:"min=1,max=20"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay" validate:"gte=0"`
	InterItemDelay time.Duration `koanf:"inter_item_delay" validate:"gte=0"`
	InterPageDelay time.Duration `koanf:"inter_page_delay" validate:"gte=0"`

	// Interval runs a sync periodically; 0 means on-demand only.
	Interval time.Duration `koanf:"interval" validate:"gte=0"`

	// RunTimeout bounds a single run; 0 means no limit.
	RunTimeout time.Duration `koanf:"run_timeout" validate:"gte=0"`

	// OnStartup runs one sync when the process starts.
	OnStartup bool `koanf:"on_startup"`

	CategoryLabels CategoryLabelsConfig `koanf:"category_labels"`
}

// CategoryLabelsConfig lists the exact group labels recognized per bucket.
type CategoryLabelsConfig struct {
	Formats   []string `koanf:"formats"`
	Genres    []string `koanf:"genres"`
	Years     []string `koanf:"years"`
	Countries []string `koanf:"countries"`
}

// DefaultCategoryLabels returns the source-locale labels plus English aliases.
func DefaultCategoryLabels() CategoryLabelsConfig {
	return CategoryLabelsConfig{
		Formats:   []string{"Định dạng", "Formats", "Format"},
		Genres:    []string{"Thể loại", "Genres", "Genre"},
		Years:     []string{"Năm", "Years", "Year"},
		Countries: []string{"Quốc gia", "Countries", "Country"},
	}
}

// StoreConfig selects the catalog store backend.
type StoreConfig struct {
	// Backend is one of badger, duckdb, postgres.
	Backend string `koanf:"backend" validate:"oneof=badger duckdb postgres"`

	// Path is the badger directory or the duckdb file. Empty opens an in-memory store.
	Path string `koanf:"path"`

	// DSN is the postgres connection string.
	DSN      string `koanf:"dsn"`
	MaxConns int    `koanf:"max_conns" validate:"gte=0"`

	// CacheSize keeps up to this many entries in a read-through LRU in
	// front of the backend; 0 disables the cache.
	CacheSize int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds authentication and authorization settings.
type SecurityConfig struct {
	// AuthMode is "jwt" or "none". "none" treats every caller as admin and is
	// rejected in production.
	AuthMode  string `koanf:"auth_mode" validate:"oneof=jwt none"`
	JWTSecret string `koanf:"jwt_secret"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	Casbin CasbinConfig `koanf:"casbin"`
}

// CasbinConfig points at optional model/policy files. Empty paths use the
// embedded defaults.
type CasbinConfig struct {
	ModelPath   string `koanf:"model_path"`
	PolicyPath  string `koanf:"policy_path"`
	DefaultRole string `koanf:"default_role"`
}

// EventsConfig controls the in-process event bus.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// BufferSize is the per-subscriber channel buffer.
	BufferSize int64 `koanf:"buffer_size" validate:"gte=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Address returns host:port for the HTTP listener.
func (s ServerConfig) Address() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
