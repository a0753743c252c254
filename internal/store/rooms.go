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

// SyncRooms replaces the stored room documents with the reconciled
// set, atomically. Either every room in the batch lands or none does.
func (s *Store) SyncRooms(ctx context.Context, rooms []models.Room) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range rooms {
			data, err := json.Marshal(&rooms[i])
			if err != nil {
				return fmt.Errorf("marshal room %s: %w", rooms[i].RoomNumber, err)
			}
			key := []byte(roomKeyPrefix + rooms[i].RoomNumber)
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set room %s: %w", rooms[i].RoomNumber, err)
			}
		}
		return nil
	})

	err = wrapStoreErr("sync rooms", err)
	metrics.RecordStoreOperation("set", time.Since(start), err)
	return err
}

// GetRoom returns one room document by room number.
func (s *Store) GetRoom(ctx context.Context, roomNumber string) (*models.Room, error) {
	start := time.Now()
	var room models.Room

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(roomKeyPrefix + roomNumber))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &room)
		})
	})

	err = wrapStoreErr("get room", err)
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms returns every stored room ordered by floor, then position
// within the floor.
func (s *Store) ListRooms(ctx context.Context) ([]models.Room, error) {
	start := time.Now()
	var rooms []models.Room

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(roomKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var room models.Room
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &room)
			})
			if err != nil {
				return fmt.Errorf("unmarshal room: %w", err)
			}
			rooms = append(rooms, room)
		}
		return nil
	})

	err = wrapStoreErr("list rooms", err)
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	// Badger iterates in lexical key order; "1005" sorts before "101".
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Floor != rooms[j].Floor {
			return rooms[i].Floor < rooms[j].Floor
		}
		return rooms[i].RoomInFloor < rooms[j].RoomInFloor
	})

	return rooms, nil
}

// CountRooms returns the number of stored room documents.
func (s *Store) CountRooms(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(roomKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, wrapStoreErr("count rooms", err)
}
