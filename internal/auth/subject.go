// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package auth

import (
	"context"
	"errors"
	"slices"
)

// AuthMode is the authentication strategy.
type AuthMode string

const (
	// AuthModeNone treats every caller as an administrator. Development only.
	AuthModeNone AuthMode = "none"

	// AuthModeJWT requires an HS256 bearer token.
	AuthModeJWT AuthMode = "jwt"
)

// ParseAuthMode converts a configuration string to an AuthMode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "jwt", "":
		return AuthModeJWT, nil
	case "none":
		return AuthModeNone, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

func (m AuthMode) String() string {
	return string(m)
}

var (
	// ErrNoCredentials: no bearer token was presented.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials: the token is malformed, tampered or signed
	// with the wrong algorithm.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials: the token is past its exp claim.
	ErrExpiredCredentials = errors.New("credentials expired")
)

// RoleAdmin is the elevated role allowed to trigger a catalog sync.
const RoleAdmin = "admin"

// AuthSubject is the authenticated caller.
type AuthSubject struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Roles      []string `json:"roles,omitempty"`
	Issuer     string   `json:"issuer,omitempty"`
	AuthMethod AuthMode `json:"auth_method"`
	IssuedAt   int64    `json:"issued_at,omitempty"`
	ExpiresAt  int64    `json:"expires_at,omitempty"`
}

// HasRole reports whether the subject holds role.
func (s *AuthSubject) HasRole(role string) bool {
	return role != "" && slices.Contains(s.Roles, role)
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// ContextWithSubject stores the subject in ctx.
func ContextWithSubject(ctx context.Context, s *AuthSubject) context.Context {
	return context.WithValue(ctx, subjectContextKey, s)
}

// SubjectFromContext returns the subject set by the middleware, or nil.
func SubjectFromContext(ctx context.Context) *AuthSubject {
	s, _ := ctx.Value(subjectContextKey).(*AuthSubject)
	return s
}
