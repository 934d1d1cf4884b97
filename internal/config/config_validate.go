// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package config

import (
	"fmt"

	"github.com/leemjnnkdzuy/rophim/internal/validation"
)

// minJWTSecretLength is the minimum HMAC secret length for JWT auth mode.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	return c.validateSecurity()
}

// validateCatalog checks the remote endpoint URLs.
func (c *Config) validateCatalog() error {
	if err := validateHTTPURL(c.Catalog.ListingURL, "CATALOG_LISTING_URL", true); err != nil {
		return fmt.Errorf("CATALOG_LISTING_URL is invalid: %w", err)
	}
	if err := validateHTTPURL(c.Catalog.DetailURL, "CATALOG_DETAIL_URL", false); err != nil {
		return fmt.Errorf("CATALOG_DETAIL_URL is invalid: %w", err)
	}
	return nil
}

// validateStore checks backend-specific settings.
func (c *Config) validateStore() error {
	if c.Store.Backend == "postgres" && c.Store.DSN == "" {
		return fmt.Errorf("STORE_DSN is required when STORE_BACKEND=postgres")
	}
	return nil
}

// validateSecurity checks authentication settings.
func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "jwt":
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
		}
	case "none":
		if c.Server.IsProduction() {
			return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
		}
	}

	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}
