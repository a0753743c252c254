// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fetch Metrics (upstream tenancy API)
	FetchPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_fetch_pages_total",
			Help: "Total number of pages fetched from the tenancy API",
		},
		[]string{"result"}, // "success", "failure"
	)

	FetchRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roomatlas_fetch_records_total",
			Help: "Total number of occupancy records fetched from the tenancy API",
		},
	)

	FetchRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roomatlas_fetch_retries_total",
			Help: "Total number of page fetch retry attempts",
		},
	)

	AuthRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_auth_refreshes_total",
			Help: "Total number of session credential refresh attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Reconciliation Metrics
	SyncCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_sync_cycles_total",
			Help: "Total number of reconciliation cycles",
		},
		[]string{"result"}, // "success", "partial", "failure"
	)

	SyncCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roomatlas_sync_cycle_duration_seconds",
			Help:    "Duration of reconciliation cycles in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	SyncRoomsOccupied = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomatlas_rooms_occupied",
			Help: "Number of occupied rooms after the last reconciliation cycle",
		},
	)

	SyncRoomsVacant = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomatlas_rooms_vacant",
			Help: "Number of vacant rooms after the last reconciliation cycle",
		},
	)

	SyncMalformedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roomatlas_malformed_records_total",
			Help: "Total number of records skipped due to malformed room identifiers",
		},
	)

	// Store Metrics (Badger)
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"operation", "result"}, // operation: "get", "set", "list", "delete"
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roomatlas_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roomatlas_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roomatlas_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Tag Metrics
	TagUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomatlas_tag_updates_total",
			Help: "Total number of tenant tag updates",
		},
		[]string{"result"}, // "success", "invalid", "not_found"
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, statusCode).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}

// RecordSyncCycle records the outcome of a reconciliation cycle.
func RecordSyncCycle(duration time.Duration, occupied, vacant int, result string) {
	SyncCycleDuration.Observe(duration.Seconds())
	SyncCyclesTotal.WithLabelValues(result).Inc()
	SyncRoomsOccupied.Set(float64(occupied))
	SyncRoomsVacant.Set(float64(vacant))
}

// RecordStoreOperation records a document store operation metric.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	StoreOperations.WithLabelValues(operation, result).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFetchPage records the outcome of a single page fetch.
func RecordFetchPage(records int, err error) {
	if err != nil {
		FetchPagesTotal.WithLabelValues("failure").Inc()
		return
	}
	FetchPagesTotal.WithLabelValues("success").Inc()
	FetchRecordsTotal.Add(float64(records))
}

// RecordAuthRefresh records a credential refresh attempt.
func RecordAuthRefresh(err error) {
	if err != nil {
		AuthRefreshesTotal.WithLabelValues("failure").Inc()
		return
	}
	AuthRefreshesTotal.WithLabelValues("success").Inc()
}
