// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import "errors"

var (
	// ErrAuthExpired reports that the upstream rejected the current
	// session credentials. The fetcher refreshes once, then gives up.
	ErrAuthExpired = errors.New("upstream session expired")

	// ErrMalformedResponse reports an upstream payload that could not
	// be decoded into the expected shape.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrSyncInProgress reports a trigger while a cycle is running.
	ErrSyncInProgress = errors.New("sync cycle already in progress")
)
