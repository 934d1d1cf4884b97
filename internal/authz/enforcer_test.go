// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package authz

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/leemjnnkdzuy/rophim/internal/config"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(&config.CasbinConfig{DefaultRole: "viewer"})
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}
	return e
}

func TestEnforceWithRoles_EmbeddedPolicy(t *testing.T) {
	t.Parallel()

	e := newTestEnforcer(t)

	tests := []struct {
		name   string
		roles  []string
		object string
		action string
		want   bool
	}{
		{"admin triggers sync", []string{"admin"}, ObjectSync, ActionWrite, true},
		{"admin reads status", []string{"admin"}, ObjectSync, ActionRead, true},
		{"admin reads films", []string{"admin"}, ObjectFilms, ActionRead, true},
		{"operator reads status", []string{"operator"}, ObjectSync, ActionRead, true},
		{"operator cannot trigger", []string{"operator"}, ObjectSync, ActionWrite, false},
		{"viewer reads films", []string{"viewer"}, ObjectFilms, ActionRead, true},
		{"viewer reads events", []string{"viewer"}, ObjectEvents, ActionRead, true},
		{"viewer cannot trigger", []string{"viewer"}, ObjectSync, ActionWrite, false},
		{"viewer cannot read status", []string{"viewer"}, ObjectSync, ActionRead, false},
		{"no roles uses default", nil, ObjectFilms, ActionRead, true},
		{"no roles cannot trigger", nil, ObjectSync, ActionWrite, false},
		{"any role suffices", []string{"guest", "admin"}, ObjectSync, ActionWrite, true},
		{"unknown role", []string{"guest"}, ObjectFilms, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := e.EnforceWithRoles(tt.roles, tt.object, tt.action)
			if err != nil {
				t.Fatalf("EnforceWithRoles: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRolesFor(t *testing.T) {
	t.Parallel()

	e := newTestEnforcer(t)
	roles := e.RolesFor("admin")
	for _, want := range []string{"admin", "operator", "viewer"} {
		if !slices.Contains(roles, want) {
			t.Errorf("admin should imply %q, got %v", want, roles)
		}
	}
}

func TestNewEnforcer_PolicyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	policy := filepath.Join(dir, "policy.csv")
	if err := os.WriteFile(policy, []byte("p, editor, catalog:sync, write\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	e, err := NewEnforcer(&config.CasbinConfig{PolicyPath: policy})
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}

	if ok, _ := e.EnforceWithRoles([]string{"editor"}, ObjectSync, ActionWrite); !ok {
		t.Error("editor should be allowed by the file policy")
	}
	if ok, _ := e.EnforceWithRoles([]string{"admin"}, ObjectSync, ActionWrite); ok {
		t.Error("embedded admin rule should not apply when a policy file is given")
	}
}

func TestLoadPolicyText_Malformed(t *testing.T) {
	t.Parallel()

	e := newTestEnforcer(t)
	if err := loadPolicyText(e.enforcer, "p, only-two"); err == nil {
		t.Error("expected error for malformed line")
	}
}
