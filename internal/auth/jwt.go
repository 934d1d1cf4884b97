// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leemjnnkdzuy/rophim/internal/config"
)

// Claims are the JWT claims accepted by the API.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager validates HS256 tokens issued by the account service.
type JWTManager struct {
	secret      []byte
	defaultRole string
}

// NewJWTManager builds a manager from the security configuration.
// Tokens carrying no roles are given the configured default role.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	return &JWTManager{
		secret:      []byte(cfg.JWTSecret),
		defaultRole: cfg.Casbin.DefaultRole,
	}, nil
}

// GenerateToken signs a token for username. Used by tooling and tests; the
// API itself never issues credentials.
func (m *JWTManager) GenerateToken(username string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, algorithm and time claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredCredentials, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// Subject converts validated claims into an AuthSubject.
func (m *JWTManager) Subject(claims *Claims) *AuthSubject {
	roles := claims.Roles
	if len(roles) == 0 && m.defaultRole != "" {
		roles = []string{m.defaultRole}
	}

	id := claims.Subject
	if id == "" {
		id = claims.Username
	}

	s := &AuthSubject{
		ID:         id,
		Username:   claims.Username,
		Roles:      roles,
		Issuer:     claims.Issuer,
		AuthMethod: AuthModeJWT,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return s
}
