// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"sort"
	"time"

	"github.com/roomatlas/roomatlas/internal/layout"
	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/models"
)

// Reconciler merges observed occupancy against the designed layout.
type Reconciler struct {
	layout *layout.Layout
}

// NewReconciler returns a Reconciler for the given layout.
func NewReconciler(l *layout.Layout) *Reconciler {
	return &Reconciler{layout: l}
}

// Reconcile produces the complete room set: every designed slot in
// deterministic order, occupied where upstream data says so, vacancy
// placeholders elsewhere. Occupied rooms falling outside the designed
// layout are kept and appended after the designed slots.
//
// When two houses decode to the same slot, the later one (by house ID
// order upstream of this call) wins and the collision is logged.
func (r *Reconciler) Reconcile(occupied []models.Room) []models.Room {
	now := time.Now().UTC()

	byKey := make(map[string]models.Room, len(occupied))
	for i := range occupied {
		key := occupied[i].LayoutKey()
		if prev, exists := byKey[key]; exists {
			logging.Warn().
				Str("room", occupied[i].RoomNumber).
				Int64("kept_house_id", occupied[i].HouseID).
				Int64("replaced_house_id", prev.HouseID).
				Msg("Two houses decode to the same room slot")
		}
		byKey[key] = occupied[i]
	}

	rooms := make([]models.Room, 0, r.layout.TotalRooms())
	for _, slot := range r.layout.Slots() {
		key := models.LayoutKeyFor(slot.Floor, slot.RoomNumber)
		if room, ok := byKey[key]; ok {
			room.UpdatedAt = now
			rooms = append(rooms, room)
			delete(byKey, key)
			continue
		}
		rooms = append(rooms, models.Room{
			RoomNumber:  slot.RoomNumber,
			HouseName:   r.layout.HouseName(slot.RoomNumber),
			Building:    r.layout.Building(),
			Unit:        r.layout.Unit(),
			Floor:       slot.Floor,
			RoomInFloor: slot.RoomInFloor,
			RoomType:    models.RoomTypeVacant,
			Capacity:    r.layout.DefaultCapacity(),
			Occupied:    false,
			Tenants:     []models.Tenant{},
			UpdatedAt:   now,
		})
	}

	// Whatever is left sits outside the designed layout.
	if len(byKey) > 0 {
		extra := make([]models.Room, 0, len(byKey))
		for _, room := range byKey {
			logging.Warn().
				Str("room", room.RoomNumber).
				Int("floor", room.Floor).
				Msg("Occupied room outside designed layout")
			room.UpdatedAt = now
			extra = append(extra, room)
		}
		sort.Slice(extra, func(i, j int) bool {
			if extra[i].Floor != extra[j].Floor {
				return extra[i].Floor < extra[j].Floor
			}
			return extra[i].RoomInFloor < extra[j].RoomInFloor
		})
		rooms = append(rooms, extra...)
	}

	return rooms
}
