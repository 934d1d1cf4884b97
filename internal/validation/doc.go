// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package validation wraps go-playground/validator v10 with a shared
// validator instance and readable error messages.
//
// Configuration structs and HTTP request parameters are validated through
// the same instance so that messages read the same everywhere:
//
//	type SyncConfig struct {
//	    MaxPages int `validate:"min=1,max=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid sync config: %w", verr)
//	}
//
// Custom tags:
//
//	slug  lowercase ASCII letters and digits joined by single hyphens
//	      ("the-last-of-us"), at most 200 characters
//
// Single values (path parameters) go through ValidateVar:
//
//	if verr := validation.ValidateVar("slug", slug, "required,slug"); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
//
// Every failure maps to the VALIDATION_ERROR code.
package validation
