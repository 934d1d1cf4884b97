// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package config provides layered configuration for the catalog service.

# Configuration Sources

Values are resolved with koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, ./config.yaml, /etc/rophim/config.yaml
  - Environment variables with an explicit name mapping

# Environment Variables

Remote catalog:
  - CATALOG_LISTING_URL: recently updated listing (default: ophim1.com listing)
  - CATALOG_DETAIL_URL: detail base URL, slug appended as a path segment
  - CATALOG_TIMEOUT: per-request timeout (default: 30s)
  - CATALOG_REQUESTS_PER_SECOND: optional token bucket cap (default: off)
  - CATALOG_CIRCUIT_BREAKER: wrap the client in a circuit breaker (default: true)

Sync engine:
  - SYNC_MAX_PAGES: safety bound on pages per run (default: 10)
  - SYNC_RETRY_ATTEMPTS: attempts per remote call, first included (default: 3)
  - SYNC_RETRY_BASE_DELAY: retry i waits i*base (default: 1s)
  - SYNC_INTER_ITEM_DELAY: pause between resolved items (default: 100ms)
  - SYNC_INTER_PAGE_DELAY: pause between listing pages (default: 500ms)
  - SYNC_INTERVAL: periodic sync interval, 0 disables (default: 0)
  - SYNC_RUN_TIMEOUT: per-run timeout (default: 30m)
  - SYNC_CATEGORY_LABELS_GENRES etc.: comma-separated label overrides

Store:
  - STORE_BACKEND: badger, duckdb or postgres (default: badger)
  - STORE_PATH: badger directory or duckdb file (default: /data/catalog)
  - STORE_DSN / DATABASE_URL: postgres connection string

Server and security:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT
  - AUTH_MODE: jwt or none (default: jwt)
  - JWT_SECRET: HMAC secret, at least 32 characters
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
  - CASBIN_MODEL_PATH, CASBIN_POLICY_PATH, CASBIN_DEFAULT_ROLE

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Validate runs the struct tags through the shared validator, then checks URLs,
backend requirements and authentication settings.
*/
package config
