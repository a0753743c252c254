// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package models

import "time"

// LayoutInfo summarizes the designed shape of the building as served
// alongside the complete layout.
type LayoutInfo struct {
	Building          string `json:"building"`
	Unit              string `json:"unit"`
	TotalFloors       int    `json:"total_floors"`
	FloorOneRooms     int    `json:"floor_one_rooms"`
	RegularFloorRooms int    `json:"regular_rooms"`
	TotalDesigned     int    `json:"total_designed"`
}

// CompleteLayout is the reconciled view of the whole building: every
// designed room slot, occupied or vacant, plus occupancy aggregates.
type CompleteLayout struct {
	TotalRooms    int         `json:"total_rooms"`
	OccupiedCount int         `json:"occupied_count"`
	VacantCount   int         `json:"vacant_count"`
	Rooms         []Room      `json:"rooms"`
	TagStatistics []TagCount  `json:"tag_statistics"`
	FloorCounts   map[int]int `json:"floor_counts"` // Occupied rooms per floor
	Layout        LayoutInfo  `json:"layout"`
	GeneratedAt   time.Time   `json:"generated_at"`
}
