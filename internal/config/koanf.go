// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/roomatlas/config.yaml",
	"/etc/roomatlas/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:      "",
			ContractID:   1489,
			ContractType: 3,
			PageSize:     50,
			MaxRetries:   3,
			RetryDelay:   2 * time.Second,
			PageDelay:    500 * time.Millisecond,
			Timeout:      30 * time.Second,
		},
		Auth: AuthConfig{
			AMSToken:    "",
			CommonToken: "",
			TokenFile:   "",
		},
		Layout: LayoutConfig{
			HouseNamePrefix:   "之寓·未来",
			Building:          "4",
			Unit:              "1",
			TotalFloors:       20,
			FloorOneRooms:     10,
			RegularFloorRooms: 12,
			DefaultCapacity:   2,
		},
		Database: DatabaseConfig{
			Path:     "/data/roomatlas",
			InMemory: false,
		},
		Sync: SyncConfig{
			Enabled:    true,
			Interval:   30 * time.Minute,
			OnStartup:  true,
			DefaultTag: "unclassified",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3858,
			Timeout:         30 * time.Second,
			Environment:     "development",
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. Nested settings map to env vars
// through an explicit table, e.g. SOURCE_BASE_URL -> source.base_url.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known
// slice fields. Env vars arrive as strings but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - SOURCE_BASE_URL -> source.base_url
//   - AMS_TOKEN -> auth.ams_token
//   - BADGER_PATH -> database.path
//   - HTTP_PORT -> server.port
//
// Unmapped variables return the empty string and are skipped, so random
// environment variables never pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Upstream tenancy API mappings
		"source_base_url":      "source.base_url",
		"source_contract_id":   "source.contract_id",
		"source_contract_type": "source.contract_type",
		"source_page_size":     "source.page_size",
		"source_max_retries":   "source.max_retries",
		"source_retry_delay":   "source.retry_delay",
		"source_page_delay":    "source.page_delay",
		"source_timeout":       "source.timeout",

		// Auth mappings
		"ams_token":       "auth.ams_token",
		"common_token":    "auth.common_token",
		"auth_token_file": "auth.token_file",

		// Layout mappings
		"layout_house_name_prefix": "layout.house_name_prefix",
		"layout_building":          "layout.building",
		"layout_unit":              "layout.unit",
		"layout_total_floors":      "layout.total_floors",
		"layout_floor_one_rooms":   "layout.floor_one_rooms",
		"layout_regular_rooms":     "layout.regular_rooms",
		"layout_default_capacity":  "layout.default_capacity",

		// Database mappings
		"badger_path":      "database.path",
		"badger_in_memory": "database.in_memory",

		// Sync mappings
		"sync_enabled":     "sync.enabled",
		"sync_interval":    "sync.interval",
		"sync_on_startup":  "sync.on_startup",
		"sync_default_tag": "sync.default_tag",

		// Server mappings
		"http_host":           "server.host",
		"http_port":           "server.port",
		"http_timeout":        "server.timeout",
		"environment":         "server.environment",
		"rate_limit_requests": "server.rate_limit_reqs",
		"rate_limit_window":   "server.rate_limit_window",
		"cors_origins":        "server.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
