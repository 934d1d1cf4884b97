// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func subjectEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SubjectFromContext(r.Context())
		if s == nil {
			http.Error(w, "no subject", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(s)
	})
}

func TestMiddleware_JWT(t *testing.T) {
	t.Parallel()

	m := newTestJWTManager(t)
	valid, err := m.GenerateToken("alice", []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	expired, err := m.GenerateToken("alice", []string{"admin"}, -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := NewMiddleware(m, AuthModeJWT).Authenticate(subjectEcho())

	tests := []struct {
		name       string
		header     string
		query      string
		upgrade    bool
		wantStatus int
		wantMsg    string
	}{
		{name: "valid bearer", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantMsg: "authentication required"},
		{name: "basic scheme", header: "Basic YWxpY2U6cHc=", wantStatus: http.StatusUnauthorized, wantMsg: "authentication required"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantMsg: "token expired"},
		{name: "tampered", header: "Bearer " + valid + "x", wantStatus: http.StatusUnauthorized, wantMsg: "invalid token"},
		{name: "query token on upgrade", query: "?token=" + valid, upgrade: true, wantStatus: http.StatusOK},
		{name: "query token without upgrade", query: "?token=" + valid, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.upgrade {
				req.Header.Set("Upgrade", "websocket")
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: expected %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusUnauthorized {
				return
			}

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Error("success should be false")
			}
			if tt.wantMsg != "" && !strings.Contains(body.Message, tt.wantMsg) {
				t.Errorf("message: expected %q in %q", tt.wantMsg, body.Message)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("expected WWW-Authenticate header")
			}
		})
	}
}

func TestMiddleware_NoneModeIsAnonymousAdmin(t *testing.T) {
	t.Parallel()

	handler := NewMiddleware(nil, AuthModeNone).Authenticate(subjectEcho())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	var s AuthSubject
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Username != "anonymous" || !s.HasRole(RoleAdmin) || s.AuthMethod != AuthModeNone {
		t.Errorf("unexpected subject: %+v", s)
	}
}
