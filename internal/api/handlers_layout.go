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

// Layout returns the complete reconciled building view: every designed
// room slot, occupied or vacant, with tenants and tag statistics.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if cached, ok := h.cache.Get(layoutCacheKey); ok {
		respondData(w, http.StatusOK, cached, start)
		return
	}

	layout, err := h.sync.GenerateCompleteLayout(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to assemble layout", err)
		return
	}
	h.cache.Set(layoutCacheKey, layout)

	respondData(w, http.StatusOK, layout, start)
}

// Rooms returns every stored room in floor order.
func (h *Handler) Rooms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rooms, err := h.store.ListRooms(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to list rooms", err)
		return
	}

	respondData(w, http.StatusOK, rooms, start)
}

// Room returns a single room by its room number.
func (h *Handler) Room(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	roomNumber := chi.URLParam(r, "roomNumber")

	room, err := h.store.GetRoom(r.Context(), roomNumber)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Room not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeStore, "Failed to load room", err)
		return
	}

	respondData(w, http.StatusOK, room, start)
}
