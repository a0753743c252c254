// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package services contains suture.Service wrappers for the supervised
// parts of the Roomatlas process.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/sync"
)

// CycleRunner is the sync manager surface the refresh loop needs.
// Satisfied by *sync.Manager.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// RefreshService runs reconciliation cycles on a fixed schedule.
type RefreshService struct {
	runner    CycleRunner
	interval  time.Duration
	onStartup bool
	name      string
}

// NewRefreshService builds the periodic reconciliation loop. With
// onStartup set, one cycle runs immediately when the service starts.
func NewRefreshService(runner CycleRunner, interval time.Duration, onStartup bool) *RefreshService {
	return &RefreshService{
		runner:    runner,
		interval:  interval,
		onStartup: onStartup,
		name:      "refresh-loop",
	}
}

// Serve implements suture.Service. Cycle failures are logged, not
// returned: a failed cycle should wait for the next tick rather than
// trip the supervisor's restart backoff.
func (s *RefreshService) Serve(ctx context.Context) error {
	if s.onStartup {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *RefreshService) run(ctx context.Context) {
	cycleCtx := logging.ContextWithNewCorrelationID(ctx)
	err := s.runner.RunCycle(cycleCtx)
	switch {
	case err == nil:
	case errors.Is(err, sync.ErrSyncInProgress):
		logging.Ctx(cycleCtx).Debug().Msg("Scheduled cycle skipped, one already running")
	case errors.Is(err, context.Canceled):
	default:
		logging.Ctx(cycleCtx).Error().Err(err).Msg("Scheduled reconciliation cycle failed")
	}
}

// String implements fmt.Stringer for suture logging.
func (s *RefreshService) String() string {
	return s.name
}
