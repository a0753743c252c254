// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/store"
)

// updateTagRequest is the PUT /tenants/{tenantID}/tag body.
type updateTagRequest struct {
	Tag string `json:"tag" validate:"required,min=1,max=64"`
}

// Tenants returns stored tenants, optionally filtered by ?tag=.
func (h *Handler) Tenants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		tenants []models.Tenant
		err     error
	)
	if tag := r.URL.Query().Get("tag"); tag != "" {
		tenants, err = h.store.ListTenantsByTag(r.Context(), tag)
	} else {
		tenants, err = h.store.ListTenants(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to list tenants", err)
		return
	}

	respondData(w, http.StatusOK, tenants, start)
}

// Tenant returns a single tenant document.
func (h *Handler) Tenant(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tenantID := chi.URLParam(r, "tenantID")

	tenant, err := h.store.GetTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, store.ErrTenantNotFound) {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Tenant not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to load tenant", err)
		return
	}

	respondData(w, http.StatusOK, tenant, start)
}

// UpdateTenantTag reassigns a tenant to a catalog tag. The assignment
// survives reconciliation cycles.
func (h *Handler) UpdateTenantTag(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tenantID := chi.URLParam(r, "tenantID")

	var req updateTagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Tag must be 1-64 characters", err)
		return
	}

	if err := h.store.UpdateTenantTag(r.Context(), tenantID, req.Tag); err != nil {
		switch {
		case errors.Is(err, store.ErrTenantNotFound):
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Tenant not found", nil)
		case errors.Is(err, store.ErrInvalidTag):
			respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Tag is not in the catalog", nil)
		default:
			respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to update tenant tag", err)
		}
		return
	}
	h.cache.Delete(layoutCacheKey)

	respondData(w, http.StatusOK, map[string]string{"tenant_id": tenantID, "tag": req.Tag}, start)
}
