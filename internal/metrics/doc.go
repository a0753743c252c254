// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package metrics provides Prometheus instrumentation for Roomatlas.
//
// All collectors are registered with the default registry via promauto
// and exposed on the /metrics endpoint. The instrumented surfaces are:
//
//   - Upstream fetch: pages, records, retries, credential refreshes
//   - Reconciliation: cycle count, duration, occupancy gauges
//   - Document store: operation counts and latency
//   - Circuit breaker: state, requests, transitions
//   - HTTP API: request counts and latency
package metrics
