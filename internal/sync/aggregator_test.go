// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"testing"

	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/models/ams"
	"github.com/roomatlas/roomatlas/internal/roomid"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(roomid.NewParser(""))
}

func TestAggregateGroupsByHouse(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟", IsMain: 1},
		{GuestsID: 2, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "李娜"},
		{GuestsID: 3, HouseID: 200, HouseName: "之寓·未来-A4栋-1单元-512", TenantName: "王芳", IsMain: 1},
	}

	rooms, tenants := newTestAggregator().Aggregate(records)

	if len(rooms) != 2 {
		t.Fatalf("len(rooms) = %d, want 2", len(rooms))
	}
	if len(tenants) != 3 {
		t.Fatalf("len(tenants) = %d, want 3", len(tenants))
	}

	r101 := rooms[0]
	if r101.RoomNumber != "101" || r101.Floor != 1 || r101.RoomInFloor != 1 {
		t.Errorf("room[0] = %s floor %d room %d, want 101/1/1", r101.RoomNumber, r101.Floor, r101.RoomInFloor)
	}
	if !r101.Occupied || r101.RoomType != models.RoomTypeOccupied {
		t.Errorf("room 101 not marked occupied: %+v", r101)
	}
	if r101.Capacity != 2 || len(r101.Tenants) != 2 {
		t.Errorf("room 101 capacity %d with %d tenants, want 2/2", r101.Capacity, len(r101.Tenants))
	}

	r512 := rooms[1]
	if r512.RoomNumber != "512" || r512.Floor != 5 || r512.RoomInFloor != 12 {
		t.Errorf("room[1] = %s floor %d room %d, want 512/5/12", r512.RoomNumber, r512.Floor, r512.RoomInFloor)
	}
}

func TestAggregatePrimaryTenantFirst(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-203", TenantName: "安然"},
		{GuestsID: 2, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-203", TenantName: "赵强", IsMain: 1},
	}

	rooms, _ := newTestAggregator().Aggregate(records)
	if len(rooms) != 1 {
		t.Fatalf("len(rooms) = %d, want 1", len(rooms))
	}
	got := rooms[0].Tenants
	if len(got) != 2 || !got[0].Primary || got[0].Name != "赵强" {
		t.Errorf("tenants = %+v, want primary 赵强 first", got)
	}
	if got[1].Primary {
		t.Errorf("second tenant flagged primary: %+v", got[1])
	}
}

func TestAggregateMultiplePrimariesKeepsFirst(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-305", TenantName: "陈晨", IsMain: 1},
		{GuestsID: 2, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-305", TenantName: "刘洋", IsMain: 1},
	}

	rooms, _ := newTestAggregator().Aggregate(records)
	got := rooms[0].Tenants

	primaries := 0
	var winner string
	for _, tn := range got {
		if tn.Primary {
			primaries++
			winner = tn.Name
		}
	}
	if primaries != 1 {
		t.Errorf("primary tenants = %d, want exactly 1", primaries)
	}
	// 陈晨 arrived first in the upstream feed and must keep the primary
	// slot even though 刘洋 sorts ahead alphabetically.
	if winner != "陈晨" {
		t.Errorf("primary = %q, want first-encountered 陈晨", winner)
	}
	if !got[0].Primary {
		t.Errorf("first tenant not primary: %+v", got)
	}
}

func TestAggregateSkipsUnparseableHouse(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟"},
		{GuestsID: 2, HouseID: 200, HouseName: "某别的楼盘-B2栋-3单元-101", TenantName: "李娜"},
		{GuestsID: 3, HouseID: 300, HouseName: "车位-P1-017", TenantName: "王芳"},
	}

	rooms, tenants := newTestAggregator().Aggregate(records)
	if len(rooms) != 1 {
		t.Fatalf("len(rooms) = %d, want 1 (unparseable houses skipped)", len(rooms))
	}
	if len(tenants) != 1 || tenants[0].Name != "张伟" {
		t.Errorf("tenants = %+v, want only 张伟", tenants)
	}
}

func TestAggregateDropsRecordsWithoutIdentity(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "无编号"},
		{GuestsID: 2, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: ""},
		{GuestsID: 3, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "李娜"},
	}

	rooms, tenants := newTestAggregator().Aggregate(records)
	if len(tenants) != 1 || tenants[0].Name != "李娜" {
		t.Errorf("tenants = %+v, want only 李娜", tenants)
	}
	if len(rooms) != 1 || rooms[0].Capacity != 1 {
		t.Errorf("rooms = %+v, want one room with capacity 1", rooms)
	}
}

func TestAggregateDeduplicatesTenants(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{GuestsID: 7, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟", IsMain: 1},
		{GuestsID: 7, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟", IsMain: 1},
	}

	rooms, tenants := newTestAggregator().Aggregate(records)
	if len(tenants) != 1 {
		t.Errorf("len(tenants) = %d, want 1 after dedupe", len(tenants))
	}
	if rooms[0].Capacity != 1 {
		t.Errorf("capacity = %d, want 1", rooms[0].Capacity)
	}
}

func TestAggregateRecordIDFallback(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{ID: 42, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "旧数据"},
	}

	_, tenants := newTestAggregator().Aggregate(records)
	if len(tenants) != 1 || tenants[0].TenantID != "42" {
		t.Errorf("tenants = %+v, want TenantID 42 from row ID fallback", tenants)
	}
}

func TestAggregateDeterministicRoomOrder(t *testing.T) {
	t.Parallel()

	records := []ams.GuestRecord{
		{GuestsID: 1, HouseID: 300, HouseName: "之寓·未来-A4栋-1单元-2012", TenantName: "甲"},
		{GuestsID: 2, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "乙"},
		{GuestsID: 3, HouseID: 200, HouseName: "之寓·未来-A4栋-1单元-205", TenantName: "丙"},
	}

	rooms, _ := newTestAggregator().Aggregate(records)
	want := []string{"101", "205", "2012"}
	for i, w := range want {
		if rooms[i].RoomNumber != w {
			t.Errorf("rooms[%d] = %s, want %s", i, rooms[i].RoomNumber, w)
		}
	}
}
