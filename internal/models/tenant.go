// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package models

import "time"

// Tenant is a stored occupant document. TenantID is the upstream guest
// identifier; Tag is operator-assigned and survives reconciliation
// cycles (sync updates every other field but never overwrites Tag).
type Tenant struct {
	TenantID         string    `json:"tenant_id"`
	Name             string    `json:"name"`
	Mobile           string    `json:"mobile,omitempty"`
	Primary          bool      `json:"primary"` // Primary signatory on the tenancy contract
	CertificateNum   string    `json:"certificate_num,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	EmergencyMobile  string    `json:"emergency_mobile,omitempty"`
	SignStatus       int       `json:"sign_status,omitempty"`
	OccupancyFlag    int       `json:"occupancy_flag,omitempty"`
	Tag              string    `json:"tag"`
	RoomNumber       string    `json:"room_number"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TagCount is a single row of the tag statistics aggregation.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
