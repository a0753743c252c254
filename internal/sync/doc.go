// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package sync implements the occupancy reconciliation engine.
//
// A reconciliation cycle runs in four stages:
//
//  1. Fetch: page through the upstream tenancy API, retrying failed
//     pages and refreshing session credentials at most once per cycle.
//  2. Aggregate: group guest records by house, parse room identifiers,
//     and fold co-tenants into per-room occupancy.
//  3. Reconcile: merge occupied rooms against the designed building
//     layout, synthesizing vacancy placeholders for empty slots.
//  4. Persist: write rooms and tenants to the document store in
//     atomic batches, preserving operator-assigned tenant tags.
//
// The Manager serializes cycles: a trigger while a cycle runs returns
// ErrSyncInProgress rather than queueing.
package sync
