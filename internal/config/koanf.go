// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/rophim/config.yaml",
	"/etc/rophim/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			ListingURL:        "https://ophim1.com/danh-sach/phim-moi-cap-nhat",
			DetailURL:         "https://ophim1.com/phim",
			Timeout:           30 * time.Second,
			UserAgent:         "rophim-sync/1.0",
			RequestsPerSecond: 0,
			Burst:             1,
			CircuitBreaker:    true,
		},
		Sync: SyncConfig{
			MaxPages:       10,
			RetryAttempts:  3,
			RetryBaseDelay: time.Second,
			InterItemDelay: 100 * time.Millisecond,
			InterPageDelay: 500 * time.Millisecond,
			Interval:       0, // on-demand only
			RunTimeout:     30 * time.Minute,
			OnStartup:      false,
			CategoryLabels: DefaultCategoryLabels(),
		},
		Store: StoreConfig{
			Backend:   "badger",
			Path:      "/data/catalog",
			MaxConns:  10,
			CacheSize: 10000,
			CacheTTL:  10 * time.Minute,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			Casbin: CasbinConfig{
				DefaultRole: "viewer",
			},
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// SYNC_MAX_PAGES -> sync.max_pages
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env vars.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"sync.category_labels.formats",
	"sync.category_labels.genres",
	"sync.category_labels.years",
	"sync.category_labels.countries",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Remote catalog
	"catalog_listing_url":         "catalog.listing_url",
	"catalog_detail_url":          "catalog.detail_url",
	"catalog_timeout":             "catalog.timeout",
	"catalog_user_agent":          "catalog.user_agent",
	"catalog_requests_per_second": "catalog.requests_per_second",
	"catalog_burst":               "catalog.burst",
	"catalog_circuit_breaker":     "catalog.circuit_breaker",

	// Sync engine
	"sync_max_pages":                 "sync.max_pages",
	"sync_retry_attempts":            "sync.retry_attempts",
	"sync_retry_base_delay":          "sync.retry_base_delay",
	"sync_inter_item_delay":          "sync.inter_item_delay",
	"sync_inter_page_delay":          "sync.inter_page_delay",
	"sync_interval":                  "sync.interval",
	"sync_run_timeout":               "sync.run_timeout",
	"sync_on_startup":                "sync.on_startup",
	"sync_category_labels_formats":   "sync.category_labels.formats",
	"sync_category_labels_genres":    "sync.category_labels.genres",
	"sync_category_labels_years":     "sync.category_labels.years",
	"sync_category_labels_countries": "sync.category_labels.countries",

	// Store
	"store_backend":    "store.backend",
	"store_path":       "store.path",
	"store_dsn":        "store.dsn",
	"database_url":     "store.dsn",
	"store_max_conns":  "store.max_conns",
	"store_cache_size": "store.cache_size",
	"store_cache_ttl":  "store.cache_ttl",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"casbin_model_path":   "security.casbin.model_path",
	"casbin_policy_path":  "security.casbin.policy_path",
	"casbin_default_role": "security.casbin.default_role",

	// Events
	"events_enabled":     "events.enabled",
	"events_buffer_size": "events.buffer_size",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a koanf path, or ""
// to skip it.
//
// Examples:
//   - CATALOG_LISTING_URL -> catalog.listing_url
//   - SYNC_MAX_PAGES -> sync.max_pages
//   - JWT_SECRET -> security.jwt_secret
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
