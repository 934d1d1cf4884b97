// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leemjnnkdzuy/rophim/internal/catalog"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	"github.com/leemjnnkdzuy/rophim/internal/validation"
)

// GetFilm returns one catalog entry by slug.
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	slug := chi.URLParam(r, "slug")

	if verr := validation.ValidateVar("slug", slug, "required,slug"); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil)
		return
	}

	entry, err := h.store.FindBySlug(r.Context(), slug)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, &models.APIError{Code: codeNotFound, Message: "Film not found"}, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &models.APIError{Code: codeInternal, Message: "Failed to load film"}, err)
		return
	}
	respondJSON(w, http.StatusOK, entry, start)
}

// LatestFilm returns the summary of the most recently modified entry, the
// watermark the next sync will stop at. An empty catalog answers 404.
func (h *Handler) LatestFilm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entry, err := h.store.Latest(r.Context())
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, &models.APIError{Code: codeNotFound, Message: "Catalog is empty"}, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &models.APIError{Code: codeInternal, Message: "Failed to load latest film"}, err)
		return
	}
	respondJSON(w, http.StatusOK, entry.Summary(), start)
}
