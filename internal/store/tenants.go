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

	"github.com/roomatlas/roomatlas/internal/metrics"
	"github.com/roomatlas/roomatlas/internal/models"
)

// SyncTenants upserts the tenants observed by a reconciliation cycle.
// The operator-assigned Tag of an existing document always survives;
// every other field is overwritten with the fresh upstream data.
// Tenants absent from the batch are left untouched, so occupants who
// move out keep their history until explicitly removed.
func (s *Store) SyncTenants(ctx context.Context, tenants []models.Tenant) error {
	start := time.Now()
	now := time.Now().UTC()

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range tenants {
			t := tenants[i]
			key := []byte(tenantKeyPrefix + t.TenantID)

			var existingTag string
			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				// First sighting
			case err != nil:
				return fmt.Errorf("get tenant %s: %w", t.TenantID, err)
			default:
				var existing models.Tenant
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &existing)
				}); err != nil {
					return fmt.Errorf("unmarshal tenant %s: %w", t.TenantID, err)
				}
				existingTag = existing.Tag
			}

			if existingTag != "" {
				t.Tag = existingTag
			} else if t.Tag == "" {
				t.Tag = s.defaultTag
			}
			t.LastSeenAt = now
			t.UpdatedAt = now

			data, err := json.Marshal(&t)
			if err != nil {
				return fmt.Errorf("marshal tenant %s: %w", t.TenantID, err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set tenant %s: %w", t.TenantID, err)
			}
		}
		return nil
	})

	err = wrapStoreErr("sync tenants", err)
	metrics.RecordStoreOperation("set", time.Since(start), err)
	return err
}

// GetTenant returns one tenant document by ID.
func (s *Store) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	start := time.Now()
	var tenant models.Tenant

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tenantKeyPrefix + tenantID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTenantNotFound
		}
		if err != nil {
			return fmt.Errorf("get tenant: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tenant)
		})
	})

	err = wrapStoreErr("get tenant", err)
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListTenants returns all tenant documents ordered by name.
func (s *Store) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return s.listTenants(func(*models.Tenant) bool { return true })
}

// ListTenantsByTag returns the tenants carrying the given tag, ordered
// by name.
func (s *Store) ListTenantsByTag(ctx context.Context, tag string) ([]models.Tenant, error) {
	return s.listTenants(func(t *models.Tenant) bool { return t.Tag == tag })
}

func (s *Store) listTenants(keep func(*models.Tenant) bool) ([]models.Tenant, error) {
	start := time.Now()
	var tenants []models.Tenant

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(tenantKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tenant models.Tenant
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tenant)
			})
			if err != nil {
				return fmt.Errorf("unmarshal tenant: %w", err)
			}
			if keep(&tenant) {
				tenants = append(tenants, tenant)
			}
		}
		return nil
	})

	err = wrapStoreErr("list tenants", err)
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	sort.Slice(tenants, func(i, j int) bool {
		if tenants[i].Name != tenants[j].Name {
			return tenants[i].Name < tenants[j].Name
		}
		return tenants[i].TenantID < tenants[j].TenantID
	})
	return tenants, nil
}

// UpdateTenantTag assigns a catalog tag to one tenant. The tag must
// already exist in the catalog.
func (s *Store) UpdateTenantTag(ctx context.Context, tenantID, tag string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		ok, err := s.tagInCatalog(txn, tag)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}

		key := []byte(tenantKeyPrefix + tenantID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTenantNotFound
		}
		if err != nil {
			return fmt.Errorf("get tenant: %w", err)
		}

		var tenant models.Tenant
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tenant)
		}); err != nil {
			return fmt.Errorf("unmarshal tenant: %w", err)
		}

		tenant.Tag = tag
		tenant.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(&tenant)
		if err != nil {
			return fmt.Errorf("marshal tenant: %w", err)
		}
		return txn.Set(key, data)
	})

	err = wrapStoreErr("update tenant tag", err)
	metrics.RecordStoreOperation("set", time.Since(start), err)

	switch {
	case err == nil:
		metrics.TagUpdatesTotal.WithLabelValues("success").Inc()
	case errors.Is(err, ErrInvalidTag):
		metrics.TagUpdatesTotal.WithLabelValues("invalid").Inc()
	case errors.Is(err, ErrTenantNotFound):
		metrics.TagUpdatesTotal.WithLabelValues("not_found").Inc()
	}
	return err
}

// TagStatistics aggregates tenant counts per tag, ordered by count
// descending, then tag ascending for stable output.
func (s *Store) TagStatistics(ctx context.Context) ([]models.TagCount, error) {
	tenants, err := s.ListTenants(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range tenants {
		tag := tenants[i].Tag
		if tag == "" {
			tag = s.defaultTag
		}
		counts[tag]++
	}

	stats := make([]models.TagCount, 0, len(counts))
	for tag, n := range counts {
		stats = append(stats, models.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Tag < stats[j].Tag
	})
	return stats, nil
}
