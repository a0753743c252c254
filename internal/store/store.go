// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package store persists rooms, tenants, and the tag catalog as JSON
// documents in BadgerDB. Key layout:
//
//	room:<roomNumber>    -> models.Room
//	tenant:<tenantID>    -> models.Tenant
//	tag:<name>           -> tag catalog entry
//
// Reconciliation writes happen inside single transactions so a failed
// cycle never leaves a partially applied batch.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/roomatlas/roomatlas/internal/config"
	"github.com/roomatlas/roomatlas/internal/logging"
)

// Key prefixes for BadgerDB storage
const (
	roomKeyPrefix   = "room:"
	tenantKeyPrefix = "tenant:"
	tagKeyPrefix    = "tag:"
)

// Store is the document store shared by the sync engine and the API.
type Store struct {
	db         *badger.DB
	defaultTag string
}

// Open opens (or creates) the store at the configured path. With
// InMemory set, state lives in process memory only and is rebuilt by
// the next reconciliation cycle.
func Open(cfg config.DatabaseConfig, defaultTag string) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	} else {
		opts = badger.DefaultOptions(cfg.Path).WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", cfg.Path, err)
	}

	s := &Store{db: db, defaultTag: defaultTag}
	if err := s.seedTagCatalog(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Document store opened")

	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the store is usable.
func (s *Store) Ping() error {
	return s.db.View(func(_ *badger.Txn) error { return nil })
}

// DefaultTag returns the tag assigned to tenants seen for the first time.
func (s *Store) DefaultTag() string {
	return s.defaultTag
}

// wrapStoreErr maps Badger failures onto the store's error taxonomy so
// callers can distinguish retryable conflicts from outages.
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%s: %w: %w", op, ErrPersistenceConflict, err)
	}
	if isNotFound(err) || errors.Is(err, ErrInvalidTag) || errors.Is(err, ErrTagExists) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistenceUnavailable, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrTenantNotFound)
}
