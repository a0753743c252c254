// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration for the Roomatlas service.
// Fields are populated via koanf from defaults, an optional YAML
// config file, and environment variables (see LoadWithKoanf).
type Config struct {
	Source   SourceConfig   `koanf:"source"`   // Upstream tenancy-management API
	Auth     AuthConfig     `koanf:"auth"`     // Session credentials for the upstream API
	Layout   LayoutConfig   `koanf:"layout"`   // Designed building layout
	Database DatabaseConfig `koanf:"database"` // Local document store
	Sync     SyncConfig     `koanf:"sync"`     // Reconciliation scheduling
	Server   ServerConfig   `koanf:"server"`   // HTTP API server
	Logging  LoggingConfig  `koanf:"logging"`
}

// SourceConfig configures the upstream tenancy-management API that
// occupancy records are fetched from.
type SourceConfig struct {
	BaseURL      string        `koanf:"base_url"`      // Base URL of the tenancy API (e.g. https://ams.example.com)
	ContractID   int           `koanf:"contract_id"`   // Contract scope sent with every page request
	ContractType int           `koanf:"contract_type"` // Contract type discriminator sent with every page request
	PageSize     int           `koanf:"page_size"`     // Records requested per page
	MaxRetries   int           `koanf:"max_retries"`   // Attempts per page before the fetch aborts
	RetryDelay   time.Duration `koanf:"retry_delay"`   // Fixed delay between retry attempts
	PageDelay    time.Duration `koanf:"page_delay"`    // Politeness delay between consecutive pages
	Timeout      time.Duration `koanf:"timeout"`       // Per-request HTTP timeout
}

// AuthConfig holds the session cookies used to authenticate against
// the upstream API. TokenFile, when set, points at a JSON cookie
// export that is re-read whenever the session expires.
type AuthConfig struct {
	AMSToken    string `koanf:"ams_token"`    // _ams_token cookie value
	CommonToken string `koanf:"common_token"` // _common_token cookie value
	TokenFile   string `koanf:"token_file"`   // Optional path to a JSON cookie export for refresh
}

// LayoutConfig describes the designed shape of the building. The
// defaults model a 20-floor single-unit tower: floor 1 has 10 rooms,
// floors 2 and up have 12 rooms each.
type LayoutConfig struct {
	HouseNamePrefix   string `koanf:"house_name_prefix"` // Complex name prefix in room identifiers
	Building          string `koanf:"building"`          // Building code (e.g. "4" for building A4)
	Unit              string `koanf:"unit"`              // Unit number within the building
	TotalFloors       int    `koanf:"total_floors"`      // Number of floors in the building
	FloorOneRooms     int    `koanf:"floor_one_rooms"`   // Rooms on the first floor
	RegularFloorRooms int    `koanf:"regular_rooms"`     // Rooms on every floor above the first
	DefaultCapacity   int    `koanf:"default_capacity"`  // Assumed bed capacity for vacant rooms
}

// DatabaseConfig configures the embedded Badger document store.
// InMemory keeps all state in process memory, which is used by tests
// and by deployments that treat the store as a rebuildable cache.
type DatabaseConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// SyncConfig controls the periodic reconciliation cycle.
type SyncConfig struct {
	Enabled    bool          `koanf:"enabled"`     // Run reconciliation on a schedule
	Interval   time.Duration `koanf:"interval"`    // Time between scheduled cycles
	OnStartup  bool          `koanf:"on_startup"`  // Run one cycle immediately at boot
	DefaultTag string        `koanf:"default_tag"` // Tag assigned to tenants seen for the first time
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	Environment     string        `koanf:"environment"` // "development" or "production"
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"` // Include caller file:line in log events
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the host:port the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
