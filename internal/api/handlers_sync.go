// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/models"
)

// syncCycleTimeout bounds a manually triggered reconciliation cycle.
const syncCycleTimeout = 10 * time.Minute

// TriggerSync starts a reconciliation cycle in the background and
// returns 202. A cycle already in flight yields 409.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.sync.Status().Running {
		respondError(w, http.StatusConflict, models.ErrCodeSyncRunning, "A reconciliation cycle is already running", nil)
		return
	}

	// Detach from the request context so the cycle survives the response.
	ctx := logging.ContextWithNewCorrelationID(context.Background())
	go func() {
		ctx, cancel := context.WithTimeout(ctx, syncCycleTimeout)
		defer cancel()
		if err := h.sync.RunCycle(ctx); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Manual reconciliation cycle failed")
			return
		}
		h.cache.Delete(layoutCacheKey)
	}()

	respondData(w, http.StatusAccepted, map[string]string{"message": "Reconciliation cycle started"}, start)
}

// SyncStatus reports whether a cycle is running and how the last one went.
func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.sync.Status(), time.Now())
}
