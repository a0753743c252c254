// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package layout

import (
	"testing"

	"github.com/roomatlas/roomatlas/internal/config"
)

func testLayoutConfig() config.LayoutConfig {
	return config.LayoutConfig{
		Building:          "4",
		Unit:              "1",
		TotalFloors:       20,
		FloorOneRooms:     10,
		RegularFloorRooms: 12,
		DefaultCapacity:   2,
	}
}

func TestTotalRooms(t *testing.T) {
	t.Parallel()

	l := New(testLayoutConfig())
	// 10 rooms on floor 1 plus 12 rooms on each of floors 2..20.
	if got := l.TotalRooms(); got != 238 {
		t.Errorf("TotalRooms() = %d, want 238", got)
	}
}

func TestRoomsOnFloor(t *testing.T) {
	t.Parallel()

	l := New(testLayoutConfig())

	tests := []struct {
		floor int
		want  int
	}{
		{0, 0},
		{1, 10},
		{2, 12},
		{20, 12},
		{21, 0},
	}
	for _, tt := range tests {
		if got := l.RoomsOnFloor(tt.floor); got != tt.want {
			t.Errorf("RoomsOnFloor(%d) = %d, want %d", tt.floor, got, tt.want)
		}
	}
}

func TestSlotsDeterministicAndComplete(t *testing.T) {
	t.Parallel()

	l := New(testLayoutConfig())
	slots := l.Slots()

	if len(slots) != 238 {
		t.Fatalf("len(Slots()) = %d, want 238", len(slots))
	}

	if slots[0].RoomNumber != "101" {
		t.Errorf("first slot = %q, want 101", slots[0].RoomNumber)
	}
	if slots[9].RoomNumber != "110" {
		t.Errorf("last floor-1 slot = %q, want 110", slots[9].RoomNumber)
	}
	if slots[10].RoomNumber != "201" {
		t.Errorf("first floor-2 slot = %q, want 201", slots[10].RoomNumber)
	}
	if slots[len(slots)-1].RoomNumber != "2012" {
		t.Errorf("final slot = %q, want 2012", slots[len(slots)-1].RoomNumber)
	}

	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		if seen[s.RoomNumber] {
			t.Errorf("duplicate slot %q", s.RoomNumber)
		}
		seen[s.RoomNumber] = true
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	l := New(testLayoutConfig())

	if !l.Contains(1, 10) {
		t.Error("Contains(1, 10) = false, want true")
	}
	if l.Contains(1, 11) {
		t.Error("Contains(1, 11) = true, want false")
	}
	if !l.Contains(20, 12) {
		t.Error("Contains(20, 12) = false, want true")
	}
	if l.Contains(21, 1) {
		t.Error("Contains(21, 1) = true, want false")
	}
}

func TestHouseName(t *testing.T) {
	t.Parallel()

	l := New(testLayoutConfig())
	if got := l.HouseName("1205"); got != "之寓·未来-A4栋-1单元-1205" {
		t.Errorf("HouseName(1205) = %q", got)
	}
}
