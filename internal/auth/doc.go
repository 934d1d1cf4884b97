// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package auth validates bearer tokens and exposes the caller as an
AuthSubject.

Credentials are issued elsewhere (the account service shares the HS256
secret); this package only validates them. Two modes exist:

  - jwt: every protected request needs "Authorization: Bearer <token>".
    Tokens carry a username and a roles claim; tokens without roles get
    security.casbin.default_role.
  - none: every caller is an anonymous admin. Configuration validation
    rejects this mode in production.

Usage:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager, auth.AuthModeJWT)
	r.With(mw.Authenticate).Post("/api/v1/admin/catalog/sync", h.TriggerSync)

Handlers read the caller with SubjectFromContext. Role checks belong to
the authz package.
*/
package auth
