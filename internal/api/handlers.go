// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/roomatlas/roomatlas/internal/cache"
	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/store"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// layoutCacheTTL bounds how stale the cached layout may get between
// reconciliation cycles. Mutations clear the cache immediately.
const layoutCacheTTL = 30 * time.Second

// layoutCacheKey is the sole key of the layout cache.
const layoutCacheKey = "complete-layout"

// SyncManager is the reconciliation surface the handlers need.
// Implemented by sync.Manager.
type SyncManager interface {
	RunCycle(ctx context.Context) error
	Status() models.SyncStatus
	LastSyncTime() time.Time
	GenerateCompleteLayout(ctx context.Context) (*models.CompleteLayout, error)
}

// Handler carries the dependencies of all API endpoints.
type Handler struct {
	store     *store.Store
	sync      SyncManager
	validate  *validator.Validate
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates a Handler over the given store and sync manager.
func NewHandler(s *store.Store, mgr SyncManager) *Handler {
	return &Handler{
		store:     s,
		sync:      mgr,
		validate:  validator.New(),
		cache:     cache.New(layoutCacheTTL),
		startTime: time.Now(),
	}
}

// Health reports service liveness, store connectivity and the last
// successful reconciliation time.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storeOK := h.store != nil && h.store.Ping() == nil

	status := "healthy"
	if !storeOK {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:        status,
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		StoreOK:       storeOK,
	}
	if h.sync != nil {
		health.LastSyncAt = h.sync.LastSyncTime()
	}

	code := http.StatusOK
	if !storeOK {
		code = http.StatusServiceUnavailable
	}
	respondData(w, code, health, time.Now())
}
