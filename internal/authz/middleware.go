// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package authz

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/auth"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
)

// Middleware gates routes on casbin decisions. It must run after
// auth.Middleware.Authenticate.
type Middleware struct {
	enforcer *Enforcer
}

func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// Authorize returns chi-style middleware requiring action on object.
// No subject yields 401, a denied subject 403.
func (m *Middleware) Authorize(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := auth.SubjectFromContext(r.Context())
			if subject == nil {
				writeDenied(w, http.StatusUnauthorized, "Unauthorized: authentication required")
				return
			}

			allowed, err := m.enforcer.EnforceWithRoles(subject.Roles, object, action)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
				writeDenied(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !allowed {
				logging.Ctx(r.Context()).Warn().
					Str("user", subject.Username).
					Strs("roles", subject.Roles).
					Str("object", object).
					Str("action", action).
					Msg("Access denied")
				writeDenied(w, http.StatusForbidden, "Forbidden: insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode authz error response")
	}
}
