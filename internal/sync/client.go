// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
client.go - Remote Catalog HTTP Client

CatalogClient talks to the third-party catalog API:

  - ListRecent(page): GET {listing_url}?page=N, newest-first listing
  - FetchDetail(slug): GET {detail_url}/{slug}, full record

The client performs exactly one HTTP exchange per call. Retries live in the
sync engine (withRetry) and breaker protection in CircuitBreakerClient, so
every layer can be tested on its own.

An optional token bucket (catalog.requests_per_second) caps the request rate
on top of the fixed pacing delays applied by the Manager.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

// maxErrorBodySize limits the response body read for error reporting.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads at most 64KB of an error response body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// ListingPage is one page of the recently updated listing.
type ListingPage struct {
	Page  int
	Items []remote.ListItem

	// Last is set when the remote pagination reports this as the final page.
	Last bool
}

// RemoteCatalog is the read side of the third-party catalog.
type RemoteCatalog interface {
	ListRecent(ctx context.Context, page int) (*ListingPage, error)
	FetchDetail(ctx context.Context, slug string) (*remote.DetailItem, error)
}

// CatalogClient is the plain HTTP implementation of RemoteCatalog.
type CatalogClient struct {
	listingURL string
	detailURL  string
	userAgent  string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewCatalogClient builds a client from configuration.
func NewCatalogClient(cfg *config.CatalogConfig) *CatalogClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &CatalogClient{
		listingURL: cfg.ListingURL,
		detailURL:  strings.TrimSuffix(cfg.DetailURL, "/"),
		userAgent:  cfg.UserAgent,
		client:     &http.Client{Timeout: timeout},
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// ListRecent fetches one page (1-based) of the recently updated listing.
func (c *CatalogClient) ListRecent(ctx context.Context, page int) (*ListingPage, error) {
	u, err := url.Parse(c.listingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	var resp remote.ListResponse
	if err := c.getJSON(ctx, "listing", u.String(), &resp); err != nil {
		return nil, err
	}

	p := resp.Pagination
	return &ListingPage{
		Page:  page,
		Items: resp.Items,
		Last:  p.TotalPages > 0 && page >= p.TotalPages,
	}, nil
}

// FetchDetail fetches the full record for slug. A 404 yields ErrRemoteNotFound.
func (c *CatalogClient) FetchDetail(ctx context.Context, slug string) (*remote.DetailItem, error) {
	reqURL := c.detailURL + "/" + url.PathEscape(slug)

	var resp remote.DetailResponse
	if err := c.getJSON(ctx, "detail", reqURL, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Item.Slug == "" {
		return nil, fmt.Errorf("%w: empty detail record for %s", ErrRemoteNotFound, slug)
	}
	return &resp.Data.Item, nil
}

// getJSON performs one GET and decodes a 200 response into result.
func (c *CatalogClient) getJSON(ctx context.Context, endpoint, reqURL string, result interface{}) error {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordRemoteRequest(endpoint, status, time.Since(start))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s rate limiter: %w", endpoint, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrRemoteNotFound, reqURL)
	}
	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
