// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package api serves the reconciled building state over HTTP.
//
// Routing uses Chi with its production middleware stack (request IDs,
// real-IP extraction, panic recovery, CORS, per-IP rate limiting).
// Every endpoint answers with the models.APIResponse envelope; the
// Prometheus scrape endpoint is the one exception.
package api
