// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Objects and actions used by the API.
const (
	ObjectSync   = "catalog:sync"
	ObjectFilms  = "catalog:films"
	ObjectEvents = "catalog:events"

	ActionRead  = "read"
	ActionWrite = "write"
)

// Enforcer evaluates role permissions with casbin.
type Enforcer struct {
	enforcer    *casbin.SyncedEnforcer
	defaultRole string
}

// NewEnforcer loads the model and policy. Empty or missing paths fall back
// to the embedded files.
func NewEnforcer(cfg *config.CasbinConfig) (*Enforcer, error) {
	var (
		m   model.Model
		err error
	)
	if cfg.ModelPath != "" && fileExists(cfg.ModelPath) {
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var e *casbin.SyncedEnforcer
	if cfg.PolicyPath != "" && fileExists(cfg.PolicyPath) {
		e, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		e, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadPolicyText(e, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{enforcer: e, defaultRole: cfg.DefaultRole}, nil
}

// EnforceWithRoles reports whether any of roles may perform action on
// object. A subject without roles is evaluated as the default role.
func (e *Enforcer) EnforceWithRoles(roles []string, object, action string) (bool, error) {
	if len(roles) == 0 && e.defaultRole != "" {
		roles = []string{e.defaultRole}
	}

	for _, role := range roles {
		allowed, err := e.enforcer.Enforce(role, object, action)
		if err != nil {
			return false, fmt.Errorf("enforcement failed: %w", err)
		}
		if allowed {
			metrics.RecordAuthzDecision(object, action, true)
			return true, nil
		}
	}
	metrics.RecordAuthzDecision(object, action, false)
	return false, nil
}

// RolesFor returns the roles role inherits, including itself.
func (e *Enforcer) RolesFor(role string) []string {
	implicit, err := e.enforcer.GetImplicitRolesForUser(role)
	if err != nil {
		return []string{role}
	}
	return append([]string{role}, implicit...)
}

// loadPolicyText adds the p and g rules of a policy CSV.
func loadPolicyText(e *casbin.SyncedEnforcer, text string) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var err error
		switch {
		case parts[0] == "p" && len(parts) == 4:
			_, err = e.AddPolicy(parts[1], parts[2], parts[3])
		case parts[0] == "g" && len(parts) == 3:
			_, err = e.AddGroupingPolicy(parts[1], parts[2])
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
		if err != nil {
			return fmt.Errorf("failed to add policy %q: %w", line, err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
