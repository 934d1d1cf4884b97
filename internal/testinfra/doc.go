// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package testinfra provides shared test infrastructure.
//
// # Fake Remote Catalog
//
// FakeCatalog is an httptest server that speaks the remote catalog API. Tests
// script listing pages, detail records and failures, then assert which pages
// and slugs the sync engine actually requested:
//
//	fake := testinfra.NewFakeCatalog(t)
//	fake.AddPage(
//	    testinfra.ListItem("movie-c", day(15)),
//	    testinfra.ListItem("movie-b", day(12)),
//	)
//	fake.FailDetail("movie-b", testinfra.AlwaysFail)
//
//	client := sync.NewCatalogClient(&config.CatalogConfig{
//	    ListingURL: fake.ListingURL(),
//	    DetailURL:  fake.DetailURL(),
//	})
//
// # Containers
//
// Behind the integration build tag, PostgresContainer starts a real
// PostgreSQL server through testcontainers-go for the postgres catalog
// backend. Tests are skipped when Docker is unavailable.
package testinfra
