// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// countingRunner records cycle invocations.
type countingRunner struct {
	calls chan struct{}
	err   error
}

func newCountingRunner(err error) *countingRunner {
	return &countingRunner{calls: make(chan struct{}, 16), err: err}
}

func (r *countingRunner) RunCycle(context.Context) error {
	r.calls <- struct{}{}
	return r.err
}

func waitForCall(t *testing.T, r *countingRunner) {
	t.Helper()
	select {
	case <-r.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("cycle never ran")
	}
}

func TestRefreshServiceRunsOnStartup(t *testing.T) {
	t.Parallel()

	runner := newCountingRunner(nil)
	svc := NewRefreshService(runner, time.Hour, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	waitForCall(t, runner)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}

func TestRefreshServiceTicks(t *testing.T) {
	t.Parallel()

	runner := newCountingRunner(nil)
	svc := NewRefreshService(runner, 10*time.Millisecond, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	waitForCall(t, runner)
	waitForCall(t, runner)
}

func TestRefreshServiceSurvivesCycleFailure(t *testing.T) {
	t.Parallel()

	runner := newCountingRunner(errors.New("upstream down"))
	svc := NewRefreshService(runner, 10*time.Millisecond, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// A failing cycle must not stop the loop.
	waitForCall(t, runner)
	waitForCall(t, runner)

	select {
	case err := <-done:
		t.Fatalf("Serve exited early: %v", err)
	default:
	}
}

func TestRefreshServiceName(t *testing.T) {
	t.Parallel()

	svc := NewRefreshService(newCountingRunner(nil), time.Minute, false)
	if svc.String() != "refresh-loop" {
		t.Errorf("String() = %q", svc.String())
	}
}
