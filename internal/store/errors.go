// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package store

import "errors"

var (
	// ErrRoomNotFound reports a room number with no stored document.
	ErrRoomNotFound = errors.New("room not found")

	// ErrTenantNotFound reports a tenant ID with no stored document.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidTag reports a tag outside the catalog.
	ErrInvalidTag = errors.New("tag not in catalog")

	// ErrTagExists reports an attempt to add a catalog tag twice.
	ErrTagExists = errors.New("tag already in catalog")

	// ErrPersistenceConflict reports a transaction conflict; the
	// operation may be retried.
	ErrPersistenceConflict = errors.New("store conflict")

	// ErrPersistenceUnavailable reports an IO-level store failure.
	ErrPersistenceUnavailable = errors.New("store unavailable")
)
