// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/roomatlas/roomatlas/internal/auth"
	"github.com/roomatlas/roomatlas/internal/config"
	"github.com/roomatlas/roomatlas/internal/models/ams"
	"github.com/roomatlas/roomatlas/internal/store"
)

// scriptedClient serves pre-built pages without touching the network.
type scriptedClient struct {
	pages []ams.GuestsPage
	err   error
}

func (c *scriptedClient) GuestsList(_ context.Context, pageNumber, _ int) (*ams.GuestsPage, error) {
	if c.err != nil {
		return nil, c.err
	}
	if pageNumber < 1 || pageNumber > len(c.pages) {
		return &ams.GuestsPage{Pages: len(c.pages), Current: pageNumber}, nil
	}
	return &c.pages[pageNumber-1], nil
}

func (c *scriptedClient) SetCredentials(auth.Credentials) {}

func newTestManager(t *testing.T, client SourceClient) (*Manager, *store.Store) {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{InMemory: true}, "unclassified")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	cfg := &config.SourceConfig{
		PageSize:   50,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}
	fetcher := NewFetcher(client, &staticCreds{}, cfg)
	l := testLayout()
	m := NewManager(fetcher, newTestAggregator(), NewReconciler(l), l, s)
	return m, s
}

func singlePage(records ...ams.GuestRecord) []ams.GuestsPage {
	return []ams.GuestsPage{{Records: records, Total: len(records), Pages: 1, Current: 1}}
}

func TestRunCyclePersistsReconciledLayout(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{pages: singlePage(
		ams.GuestRecord{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟", IsMain: 1},
		ams.GuestRecord{GuestsID: 2, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "李娜"},
	)}
	m, s := newTestManager(t, client)

	ctx := context.Background()
	if err := m.RunCycle(ctx); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	count, err := s.CountRooms(ctx)
	if err != nil {
		t.Fatalf("CountRooms: %v", err)
	}
	if count != 238 {
		t.Errorf("rooms persisted = %d, want 238", count)
	}

	room, err := s.GetRoom(ctx, "101")
	if err != nil {
		t.Fatalf("GetRoom(101): %v", err)
	}
	if !room.Occupied || len(room.Tenants) != 2 {
		t.Errorf("room 101 = %+v, want occupied with 2 tenants", room)
	}

	tenant, err := s.GetTenant(ctx, "1")
	if err != nil {
		t.Fatalf("GetTenant(1): %v", err)
	}
	if tenant.Tag != "unclassified" {
		t.Errorf("new tenant tag = %q, want unclassified", tenant.Tag)
	}

	st := m.Status()
	if st.Running || st.LastError != "" || st.RoomsSynced != 238 {
		t.Errorf("status = %+v", st)
	}
	if m.LastSyncTime().IsZero() {
		t.Error("LastSyncTime not set after successful cycle")
	}
}

func TestRunCycleFailedFetchPersistsNothing(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{err: fmt.Errorf("upstream unreachable")}
	m, s := newTestManager(t, client)

	ctx := context.Background()
	if err := m.RunCycle(ctx); err == nil {
		t.Fatal("expected error from failed fetch")
	}

	count, err := s.CountRooms(ctx)
	if err != nil {
		t.Fatalf("CountRooms: %v", err)
	}
	if count != 0 {
		t.Errorf("rooms persisted = %d, want 0 after total fetch failure", count)
	}
	if m.Status().LastError == "" {
		t.Error("LastError not recorded")
	}
	if !m.LastSyncTime().IsZero() {
		t.Error("LastSyncTime set despite failed cycle")
	}
}

func TestRunCycleRejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, &scriptedClient{})

	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	if err := m.RunCycle(context.Background()); !errors.Is(err, ErrSyncInProgress) {
		t.Errorf("error = %v, want ErrSyncInProgress", err)
	}
}

func TestGenerateCompleteLayout(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{pages: singlePage(
		ams.GuestRecord{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟", IsMain: 1},
		ams.GuestRecord{GuestsID: 2, HouseID: 200, HouseName: "之寓·未来-A4栋-1单元-512", TenantName: "王芳"},
	)}
	m, _ := newTestManager(t, client)

	ctx := context.Background()
	if err := m.RunCycle(ctx); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	cl, err := m.GenerateCompleteLayout(ctx)
	if err != nil {
		t.Fatalf("GenerateCompleteLayout: %v", err)
	}
	if cl.TotalRooms != 238 || cl.OccupiedCount != 2 || cl.VacantCount != 236 {
		t.Errorf("counts = %d/%d/%d, want 238/2/236", cl.TotalRooms, cl.OccupiedCount, cl.VacantCount)
	}
	if cl.FloorCounts[1] != 1 || cl.FloorCounts[5] != 1 {
		t.Errorf("floor counts = %v, want one occupied on floors 1 and 5", cl.FloorCounts)
	}
	if cl.Layout.TotalDesigned != 238 {
		t.Errorf("layout info = %+v", cl.Layout)
	}
	if cl.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestGenerateCompleteLayoutReflectsTagEdits(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{pages: singlePage(
		ams.GuestRecord{GuestsID: 1, HouseID: 100, HouseName: "之寓·未来-A4栋-1单元-101", TenantName: "张伟", IsMain: 1},
	)}
	m, s := newTestManager(t, client)

	ctx := context.Background()
	if err := m.RunCycle(ctx); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if err := s.UpdateTenantTag(ctx, "1", "cohort-2024"); err != nil {
		t.Fatalf("UpdateTenantTag: %v", err)
	}

	cl, err := m.GenerateCompleteLayout(ctx)
	if err != nil {
		t.Fatalf("GenerateCompleteLayout: %v", err)
	}
	for _, room := range cl.Rooms {
		if room.RoomNumber != "101" {
			continue
		}
		if len(room.Tenants) != 1 || room.Tenants[0].Tag != "cohort-2024" {
			t.Errorf("room 101 tenants = %+v, want tag cohort-2024 overlaid", room.Tenants)
		}
		return
	}
	t.Fatal("room 101 missing from layout")
}
