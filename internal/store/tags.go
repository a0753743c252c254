// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// tagEntry is the stored catalog document for one tag.
type tagEntry struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// seedTags are the catalog entries created on first open. The default
// tag must always be present so fresh tenants have somewhere to land.
var seedTags = []string{
	"cohort-2022",
	"cohort-2023",
	"cohort-2024",
	"internship",
}

// seedTagCatalog installs the seed tags plus the configured default
// tag, skipping entries that already exist.
func (s *Store) seedTagCatalog() error {
	tags := make([]string, 0, len(seedTags)+1)
	tags = append(tags, seedTags...)
	if s.defaultTag != "" {
		tags = append(tags, s.defaultTag)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		now := time.Now().UTC()
		for _, tag := range tags {
			key := []byte(tagKeyPrefix + tag)
			_, err := txn.Get(key)
			if err == nil {
				continue
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("get tag %s: %w", tag, err)
			}
			data, err := json.Marshal(&tagEntry{Name: tag, CreatedAt: now})
			if err != nil {
				return fmt.Errorf("marshal tag %s: %w", tag, err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set tag %s: %w", tag, err)
			}
		}
		return nil
	})
	return wrapStoreErr("seed tag catalog", err)
}

// AvailableTags returns the catalog, sorted ascending.
func (s *Store) AvailableTags(ctx context.Context) ([]string, error) {
	var tags []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(tagKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			tags = append(tags, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("list tags", err)
	}

	sort.Strings(tags)
	return tags, nil
}

// AddTag extends the catalog with a new tag.
func (s *Store) AddTag(ctx context.Context, tag string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(tagKeyPrefix + tag)
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %q", ErrTagExists, tag)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get tag: %w", err)
		}
		data, err := json.Marshal(&tagEntry{Name: tag, CreatedAt: time.Now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal tag: %w", err)
		}
		return txn.Set(key, data)
	})
	return wrapStoreErr("add tag", err)
}

// tagInCatalog checks a tag's presence inside an open transaction.
func (s *Store) tagInCatalog(txn *badger.Txn, tag string) (bool, error) {
	_, err := txn.Get([]byte(tagKeyPrefix + tag))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get tag: %w", err)
	}
	return true, nil
}
