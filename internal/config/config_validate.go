// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package config

import (
	"fmt"
	"net/url"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}

	if err := c.validateLayout(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSource validates the upstream tenancy API configuration.
func (c *Config) validateSource() error {
	if c.Source.BaseURL == "" {
		return fmt.Errorf("SOURCE_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Source.BaseURL, "SOURCE_BASE_URL"); err != nil {
		return err
	}
	if c.Source.PageSize < 1 || c.Source.PageSize > 500 {
		return fmt.Errorf("SOURCE_PAGE_SIZE must be between 1 and 500, got %d", c.Source.PageSize)
	}
	if c.Source.MaxRetries < 1 || c.Source.MaxRetries > 10 {
		return fmt.Errorf("SOURCE_MAX_RETRIES must be between 1 and 10, got %d", c.Source.MaxRetries)
	}
	if c.Source.RetryDelay < 0 {
		return fmt.Errorf("SOURCE_RETRY_DELAY must not be negative")
	}
	if c.Source.PageDelay < 0 {
		return fmt.Errorf("SOURCE_PAGE_DELAY must not be negative")
	}
	return nil
}

// validateLayout validates the designed building layout. A layout that
// describes zero rooms would make every reconciliation cycle vacuous.
func (c *Config) validateLayout() error {
	if c.Layout.TotalFloors < 1 {
		return fmt.Errorf("LAYOUT_TOTAL_FLOORS must be at least 1, got %d", c.Layout.TotalFloors)
	}
	if c.Layout.FloorOneRooms < 1 {
		return fmt.Errorf("LAYOUT_FLOOR_ONE_ROOMS must be at least 1, got %d", c.Layout.FloorOneRooms)
	}
	if c.Layout.TotalFloors > 1 && c.Layout.RegularFloorRooms < 1 {
		return fmt.Errorf("LAYOUT_REGULAR_ROOMS must be at least 1 for multi-floor layouts, got %d", c.Layout.RegularFloorRooms)
	}
	if c.Layout.FloorOneRooms > 99 || c.Layout.RegularFloorRooms > 99 {
		return fmt.Errorf("rooms per floor cannot exceed 99 (room codes carry two positional digits)")
	}
	if c.Layout.DefaultCapacity < 1 {
		return fmt.Errorf("LAYOUT_DEFAULT_CAPACITY must be at least 1, got %d", c.Layout.DefaultCapacity)
	}
	return nil
}

// validateDatabase validates the document store configuration.
func (c *Config) validateDatabase() error {
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	return nil
}

// validateServer validates the HTTP server configuration.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Server.RateLimitReqs)
	}
	return nil
}

// validateLogging validates the logging configuration.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Validates: scheme (http/https), host present, no query params.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
