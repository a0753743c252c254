// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package models

import (
	"strconv"
	"time"
)

// RoomCoordinates is the structured position of a room inside the
// building, decoded from a raw house-name identifier such as
// "之寓·未来-A4栋-1单元-1205". The room code's trailing two digits
// index the room within its floor, the leading digits the floor.
type RoomCoordinates struct {
	Building    string `json:"building"`      // Building code, e.g. "4"
	Unit        string `json:"unit"`          // Unit number within the building
	RoomNumber  string `json:"room_number"`   // Raw room code, e.g. "1205"
	Floor       int    `json:"floor"`         // Derived floor, e.g. 12
	RoomInFloor int    `json:"room_in_floor"` // Derived position, e.g. 5
}

// Room is the unit of occupancy the reconciliation engine operates on.
// A room is a stored document keyed by its room number; Tenants holds
// the current occupants, empty for a vacancy placeholder.
type Room struct {
	RoomNumber  string    `json:"room_number"` // Canonical key, e.g. "1205"
	HouseID     int64     `json:"house_id"`    // Upstream house identifier, 0 for vacancies
	HouseName   string    `json:"house_name"`  // Full identifier string
	Building    string    `json:"building"`
	Unit        string    `json:"unit"`
	Floor       int       `json:"floor"`
	RoomInFloor int       `json:"room_in_floor"`
	RoomType    string    `json:"room_type"` // "occupied" or "vacant"
	Capacity    int       `json:"capacity"`
	Occupied    bool      `json:"occupied"`
	Tenants     []Tenant  `json:"tenants"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Room type discriminators.
const (
	RoomTypeOccupied = "occupied"
	RoomTypeVacant   = "vacant"
)

// LayoutKey returns the merge key identifying this room's designed
// slot, "floor-roomNumber". Two upstream groups that decode to the
// same slot collide on this key.
func (r *Room) LayoutKey() string {
	return layoutKey(r.Floor, r.RoomNumber)
}

// LayoutKeyFor builds the merge key for a floor and room code.
func LayoutKeyFor(floor int, roomNumber string) string {
	return layoutKey(floor, roomNumber)
}

func layoutKey(floor int, roomNumber string) string {
	return strconv.Itoa(floor) + "-" + roomNumber
}
