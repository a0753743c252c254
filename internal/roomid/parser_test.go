// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package roomid

import (
	"errors"
	"testing"

	"github.com/roomatlas/roomatlas/internal/models"
)

func TestParse(t *testing.T) {
	t.Parallel()

	p := NewParser("")

	tests := []struct {
		name      string
		houseName string
		want      models.RoomCoordinates
		wantErr   bool
	}{
		{
			name:      "upper floor room",
			houseName: "之寓·未来-A4栋-1单元-1205",
			want: models.RoomCoordinates{
				Building: "4", Unit: "1", RoomNumber: "1205",
				Floor: 12, RoomInFloor: 5,
			},
		},
		{
			name:      "first floor room",
			houseName: "之寓·未来-A4栋-1单元-107",
			want: models.RoomCoordinates{
				Building: "4", Unit: "1", RoomNumber: "107",
				Floor: 1, RoomInFloor: 7,
			},
		},
		{
			name:      "top floor double digit room",
			houseName: "之寓·未来-A4栋-1单元-2012",
			want: models.RoomCoordinates{
				Building: "4", Unit: "1", RoomNumber: "2012",
				Floor: 20, RoomInFloor: 12,
			},
		},
		{
			name:      "identifier with trailing annotation",
			houseName: "之寓·未来-A4栋-1单元-305(已租)",
			want: models.RoomCoordinates{
				Building: "4", Unit: "1", RoomNumber: "305",
				Floor: 3, RoomInFloor: 5,
			},
		},
		{
			name:      "wrong prefix",
			houseName: "某小区-A4栋-1单元-1205",
			wantErr:   true,
		},
		{
			name:      "missing unit segment",
			houseName: "之寓·未来-A4栋-1205",
			wantErr:   true,
		},
		{
			name:      "empty string",
			houseName: "",
			wantErr:   true,
		},
		{
			name:      "non-numeric room code",
			houseName: "之寓·未来-A4栋-1单元-abc",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.Parse(tt.houseName)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.houseName)
				}
				if !errors.Is(err, ErrMalformedIdentifier) {
					t.Errorf("error = %v, want ErrMalformedIdentifier", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.houseName, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.houseName, got, tt.want)
			}
		})
	}
}

func TestParseCustomPrefix(t *testing.T) {
	t.Parallel()

	p := NewParser("城市之光")
	got, err := p.Parse("城市之光-A2栋-3单元-808")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Building != "2" || got.Unit != "3" || got.Floor != 8 || got.RoomInFloor != 8 {
		t.Errorf("unexpected coordinates: %+v", got)
	}

	if _, err := p.Parse("之寓·未来-A4栋-1单元-1205"); err == nil {
		t.Error("expected default-prefix identifier to fail under custom prefix")
	}
}

func TestSplitRoomCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code           string
		floor, roomIdx int
	}{
		{"107", 1, 7},
		{"110", 1, 10},
		{"201", 2, 1},
		{"1205", 12, 5},
		{"2012", 20, 12},
		{"7", 1, 7},
		{"12", 1, 12},
		{"012", 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			floor, roomIdx := SplitRoomCode(tt.code)
			if floor != tt.floor || roomIdx != tt.roomIdx {
				t.Errorf("SplitRoomCode(%q) = (%d, %d), want (%d, %d)",
					tt.code, floor, roomIdx, tt.floor, tt.roomIdx)
			}
		})
	}
}

func TestFormatRoomCodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		floor, roomIdx int
		want           string
	}{
		{1, 7, "107"},
		{1, 10, "110"},
		{12, 5, "1205"},
		{20, 12, "2012"},
	}

	for _, tt := range tests {
		got := FormatRoomCode(tt.floor, tt.roomIdx)
		if got != tt.want {
			t.Errorf("FormatRoomCode(%d, %d) = %q, want %q", tt.floor, tt.roomIdx, got, tt.want)
			continue
		}
		floor, roomIdx := SplitRoomCode(got)
		if floor != tt.floor || roomIdx != tt.roomIdx {
			t.Errorf("SplitRoomCode(%q) = (%d, %d), want (%d, %d)",
				got, floor, roomIdx, tt.floor, tt.roomIdx)
		}
	}
}
