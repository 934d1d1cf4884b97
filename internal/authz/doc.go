// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package authz checks role permissions with casbin.
//
// The embedded policy defines three roles: viewer reads films and the event
// feed, operator also reads sync status, admin may trigger a sync. Operators
// inherit viewer permissions and admins inherit operator permissions.
// Deployments override the model or policy with security.casbin.model_path
// and security.casbin.policy_path.
package authz
