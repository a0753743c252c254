// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/roomatlas/roomatlas/internal/layout"
	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/metrics"
	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/store"
)

// Manager orchestrates reconciliation cycles and serves the reconciled
// layout. Cycles are serialized: RunCycle returns ErrSyncInProgress
// when one is already running.
type Manager struct {
	fetcher    *Fetcher
	aggregator *Aggregator
	reconciler *Reconciler
	layout     *layout.Layout
	store      *store.Store

	syncMu stdsync.Mutex // serializes cycles

	mu          stdsync.RWMutex // guards the status fields below
	running     bool
	lastSyncAt  time.Time
	lastErr     error
	roomsSynced int
}

// NewManager wires the pipeline stages together.
func NewManager(fetcher *Fetcher, aggregator *Aggregator, reconciler *Reconciler, l *layout.Layout, s *store.Store) *Manager {
	return &Manager{
		fetcher:    fetcher,
		aggregator: aggregator,
		reconciler: reconciler,
		layout:     l,
		store:      s,
	}
}

// RunCycle executes one fetch-aggregate-reconcile-persist cycle.
//
// A fetch that fails partway still yields the records gathered so far;
// the cycle proceeds with them and reports partial. Nothing is
// persisted when the fetch returned no records at all.
func (m *Manager) RunCycle(ctx context.Context) error {
	if !m.syncMu.TryLock() {
		return ErrSyncInProgress
	}
	defer m.syncMu.Unlock()

	m.setRunning(true)
	defer m.setRunning(false)

	start := time.Now()
	log := logging.Ctx(ctx)
	log.Info().Msg("Reconciliation cycle started")

	records, fetchErr := m.fetcher.FetchAll(ctx)
	if fetchErr != nil && len(records) == 0 {
		m.finishCycle(start, 0, 0, fetchErr, "failure")
		return fmt.Errorf("fetch: %w", fetchErr)
	}
	if fetchErr != nil {
		log.Warn().Err(fetchErr).Int("records", len(records)).
			Msg("Fetch incomplete, reconciling partial data")
	}

	occupied, tenants := m.aggregator.Aggregate(records)
	rooms := m.reconciler.Reconcile(occupied)

	if err := m.store.SyncTenants(ctx, tenants); err != nil {
		m.finishCycle(start, 0, 0, err, "failure")
		return fmt.Errorf("persist tenants: %w", err)
	}
	if err := m.store.SyncRooms(ctx, rooms); err != nil {
		m.finishCycle(start, 0, 0, err, "failure")
		return fmt.Errorf("persist rooms: %w", err)
	}

	occupiedCount := len(occupied)
	vacantCount := len(rooms) - occupiedCount

	result := "success"
	if fetchErr != nil {
		result = "partial"
	}
	m.finishCycle(start, occupiedCount, vacantCount, fetchErr, result)

	log.Info().
		Int("rooms", len(rooms)).
		Int("occupied", occupiedCount).
		Int("vacant", vacantCount).
		Int("tenants", len(tenants)).
		Str("result", result).
		Dur("elapsed", time.Since(start)).
		Msg("Reconciliation cycle finished")

	return nil
}

func (m *Manager) setRunning(v bool) {
	m.mu.Lock()
	m.running = v
	m.mu.Unlock()
}

func (m *Manager) finishCycle(start time.Time, occupied, vacant int, err error, result string) {
	metrics.RecordSyncCycle(time.Since(start), occupied, vacant, result)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = err
	if result != "failure" {
		m.lastSyncAt = time.Now().UTC()
		m.roomsSynced = occupied + vacant
	}
}

// Status reports the manager's current cycle state.
func (m *Manager) Status() models.SyncStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := models.SyncStatus{
		Running:     m.running,
		LastSyncAt:  m.lastSyncAt,
		RoomsSynced: m.roomsSynced,
	}
	if m.lastErr != nil {
		st.LastError = m.lastErr.Error()
	}
	return st
}

// LastSyncTime returns when the last successful cycle finished.
func (m *Manager) LastSyncTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSyncAt
}

// GenerateCompleteLayout assembles the reconciled building view from
// the store. Tenant tags come from the tenant documents, so operator
// edits made after the last cycle are reflected immediately.
func (m *Manager) GenerateCompleteLayout(ctx context.Context) (*models.CompleteLayout, error) {
	rooms, err := m.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	tenants, err := m.store.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	tagByID := make(map[string]string, len(tenants))
	for i := range tenants {
		tagByID[tenants[i].TenantID] = tenants[i].Tag
	}

	occupied := 0
	floorCounts := make(map[int]int)
	for i := range rooms {
		for j := range rooms[i].Tenants {
			if tag, ok := tagByID[rooms[i].Tenants[j].TenantID]; ok {
				rooms[i].Tenants[j].Tag = tag
			}
		}
		if rooms[i].Occupied {
			occupied++
			floorCounts[rooms[i].Floor]++
		}
	}

	stats, err := m.store.TagStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &models.CompleteLayout{
		TotalRooms:    len(rooms),
		OccupiedCount: occupied,
		VacantCount:   len(rooms) - occupied,
		Rooms:         rooms,
		TagStatistics: stats,
		FloorCounts:   floorCounts,
		Layout:        m.layout.Info(),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
