// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/store"
)

// addTagRequest is the POST /tags body.
type addTagRequest struct {
	Tag string `json:"tag" validate:"required,min=1,max=64,excludesall=0x20"`
}

// Tags returns the tag catalog.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tags, err := h.store.AvailableTags(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to list tags", err)
		return
	}

	respondData(w, http.StatusOK, map[string][]string{"tags": tags}, start)
}

// AddTag adds a new tag to the catalog.
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req addTagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Tag must be 1-64 characters without spaces", err)
		return
	}

	if err := h.store.AddTag(r.Context(), req.Tag); err != nil {
		if errors.Is(err, store.ErrTagExists) {
			respondError(w, http.StatusConflict, models.ErrCodeValidation, "Tag already exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to add tag", err)
		return
	}

	respondData(w, http.StatusCreated, map[string]string{"tag": req.Tag}, start)
}

// TagStatistics returns tenant counts per tag, most used first.
func (h *Handler) TagStatistics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := h.store.TagStatistics(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to compute tag statistics", err)
		return
	}

	respondData(w, http.StatusOK, stats, start)
}
