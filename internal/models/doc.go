// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package models defines the shared data types of Roomatlas: rooms,
// tenants, the designed building layout, and the HTTP API response
// envelope. Wire types for the upstream tenancy API live in the
// models/ams subpackage.
package models
