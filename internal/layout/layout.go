// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package layout models the designed shape of the building: which room
// slots exist regardless of occupancy. Reconciliation merges upstream
// occupancy data against these slots so vacant rooms still appear in
// the complete layout.
package layout

import (
	"fmt"

	"github.com/roomatlas/roomatlas/internal/config"
	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/roomid"
)

// Layout is an immutable description of the building's designed rooms.
type Layout struct {
	prefix            string
	building          string
	unit              string
	totalFloors       int
	floorOneRooms     int
	regularFloorRooms int
	defaultCapacity   int
}

// New builds a Layout from configuration.
func New(cfg config.LayoutConfig) *Layout {
	prefix := cfg.HouseNamePrefix
	if prefix == "" {
		prefix = roomid.DefaultPrefix
	}
	return &Layout{
		prefix:            prefix,
		building:          cfg.Building,
		unit:              cfg.Unit,
		totalFloors:       cfg.TotalFloors,
		floorOneRooms:     cfg.FloorOneRooms,
		regularFloorRooms: cfg.RegularFloorRooms,
		defaultCapacity:   cfg.DefaultCapacity,
	}
}

// TotalRooms returns the number of designed room slots in the building.
func (l *Layout) TotalRooms() int {
	if l.totalFloors < 1 {
		return 0
	}
	return l.floorOneRooms + (l.totalFloors-1)*l.regularFloorRooms
}

// RoomsOnFloor returns the number of designed rooms on a floor, or 0
// for floors outside the building.
func (l *Layout) RoomsOnFloor(floor int) int {
	switch {
	case floor < 1 || floor > l.totalFloors:
		return 0
	case floor == 1:
		return l.floorOneRooms
	default:
		return l.regularFloorRooms
	}
}

// Contains reports whether the given coordinates name a designed slot.
func (l *Layout) Contains(floor, roomInFloor int) bool {
	return roomInFloor >= 1 && roomInFloor <= l.RoomsOnFloor(floor)
}

// Info returns the layout summary served with the complete layout.
func (l *Layout) Info() models.LayoutInfo {
	return models.LayoutInfo{
		Building:          l.building,
		Unit:              l.unit,
		TotalFloors:       l.totalFloors,
		FloorOneRooms:     l.floorOneRooms,
		RegularFloorRooms: l.regularFloorRooms,
		TotalDesigned:     l.TotalRooms(),
	}
}

// Slot is one designed room position.
type Slot struct {
	Floor       int
	RoomInFloor int
	RoomNumber  string // e.g. "1205"
}

// Slots enumerates every designed room in deterministic order: floor
// ascending, then room-in-floor ascending.
func (l *Layout) Slots() []Slot {
	slots := make([]Slot, 0, l.TotalRooms())
	for floor := 1; floor <= l.totalFloors; floor++ {
		for room := 1; room <= l.RoomsOnFloor(floor); room++ {
			slots = append(slots, Slot{
				Floor:       floor,
				RoomInFloor: room,
				RoomNumber:  roomid.FormatRoomCode(floor, room),
			})
		}
	}
	return slots
}

// HouseName renders the full identifier for a slot, matching the
// upstream naming convention.
func (l *Layout) HouseName(roomNumber string) string {
	return fmt.Sprintf("%s-A%s栋-%s单元-%s", l.prefix, l.building, l.unit, roomNumber)
}

// Building returns the building code.
func (l *Layout) Building() string { return l.building }

// Unit returns the unit number.
func (l *Layout) Unit() string { return l.unit }

// DefaultCapacity returns the assumed bed capacity for vacant rooms.
func (l *Layout) DefaultCapacity() int { return l.defaultCapacity }
