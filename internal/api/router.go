// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a Router over the given handler and middleware stack.
func NewRouter(handler *Handler, mw *Middleware) *Router {
	return &Router{handler: handler, middleware: mw}
}

// Setup returns the complete HTTP handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.middleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(RequestMetrics())

		r.Get("/layout", router.handler.Layout)
		r.Get("/rooms", router.handler.Rooms)
		r.Get("/rooms/{roomNumber}", router.handler.Room)

		r.Get("/tags", router.handler.Tags)
		r.Get("/tags/statistics", router.handler.TagStatistics)

		r.Get("/tenants", router.handler.Tenants)
		r.Get("/tenants/{tenantID}", router.handler.Tenant)

		r.Get("/sync/status", router.handler.SyncStatus)

		// Mutating endpoints carry a tighter budget.
		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimitWrite())
			r.Post("/tags", router.handler.AddTag)
			r.Put("/tenants/{tenantID}/tag", router.handler.UpdateTenantTag)
			r.Post("/sync", router.handler.TriggerSync)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
