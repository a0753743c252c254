// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package config provides layered configuration loading for Roomatlas.
//
// Configuration is resolved in three layers with clear precedence:
//
//	Environment Variables > Config File (YAML) > Built-in Defaults
//
// The config file path is discovered from CONFIG_PATH or a set of
// well-known locations. Environment variables map to nested keys via
// an explicit table (e.g. SOURCE_BASE_URL -> source.base_url), so
// unrelated variables never leak into the configuration.
package config
