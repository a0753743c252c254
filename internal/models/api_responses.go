// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package models

import "time"

// APIResponse is the envelope every API endpoint returns. Status is
// "success" or "error"; Error is populated only on error responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries a machine-readable code alongside the human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeStore       = "STORE_ERROR"
	ErrCodeSyncFailed  = "SYNC_FAILED"
	ErrCodeSyncRunning = "SYNC_IN_PROGRESS"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// HealthStatus is the payload of the /health endpoint.
type HealthStatus struct {
	Status        string    `json:"status"` // "healthy" or "degraded"
	Version       string    `json:"version"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	LastSyncAt    time.Time `json:"last_sync_at,omitempty"`
	StoreOK       bool      `json:"store_ok"`
}

// SyncStatus is the payload returned when a sync cycle is triggered or
// its state queried.
type SyncStatus struct {
	Running     bool      `json:"running"`
	LastSyncAt  time.Time `json:"last_sync_at,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	RoomsSynced int       `json:"rooms_synced"`
}
