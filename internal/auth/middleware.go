// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/logging"
)

// Middleware authenticates requests and stores the AuthSubject in the
// request context.
type Middleware struct {
	jwt  *JWTManager
	mode AuthMode
}

// NewMiddleware creates the authentication middleware. jwtManager may be nil
// only in AuthModeNone.
func NewMiddleware(jwtManager *JWTManager, mode AuthMode) *Middleware {
	return &Middleware{jwt: jwtManager, mode: mode}
}

// anonymousAdmin is the subject used when authentication is disabled.
var anonymousAdmin = AuthSubject{
	ID:         "anonymous",
	Username:   "anonymous",
	Roles:      []string{RoleAdmin},
	AuthMethod: AuthModeNone,
}

// Authenticate rejects requests without a valid bearer token with 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode == AuthModeNone {
			subject := anonymousAdmin
			next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), &subject)))
			return
		}

		token, err := extractBearerToken(r)
		if err != nil {
			writeUnauthorized(w, "Unauthorized: authentication required")
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Token validation failed")
			msg := "Unauthorized: invalid token"
			if errors.Is(err, ErrExpiredCredentials) {
				msg = "Unauthorized: token expired"
			}
			writeUnauthorized(w, msg)
			return
		}

		ctx := ContextWithSubject(r.Context(), m.jwt.Subject(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken reads "Authorization: Bearer <token>". Browsers that
// cannot set headers on a WebSocket upgrade pass ?token= instead.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if t := r.URL.Query().Get("token"); t != "" && isUpgrade(r) {
			return t, nil
		}
		return "", ErrNoCredentials
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrInvalidCredentials
	}
	return token, nil
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="rophim"`)
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
