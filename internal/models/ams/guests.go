// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package ams holds the wire types of the upstream tenancy-management
// (AMS) API. Field names mirror the upstream camelCase JSON exactly;
// translation into the Roomatlas domain model happens in the sync
// aggregator, never here.
package ams

import "strconv"

// GuestsListRequest is the POST body of the paginated guests listing.
// GuestsName is always sent, empty meaning "no name filter".
type GuestsListRequest struct {
	PageNumber   int    `json:"pageNumber"`
	PageSize     int    `json:"pageSize"`
	GuestsName   string `json:"guestsName"`
	ContractType int    `json:"contractType"`
	ContractID   int    `json:"contractId"`
}

// GuestsListResponse is the top-level envelope of the guests listing.
type GuestsListResponse struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    GuestsPage `json:"data"`
}

// GuestsPage is one page of guest records with pagination bookkeeping.
// Pages is authoritative only after the first page has been read.
type GuestsPage struct {
	Records []GuestRecord `json:"records"`
	Total   int           `json:"total"`
	Pages   int           `json:"pages"`
	Current int           `json:"current"`
	Size    int           `json:"size"`
}

// GuestRecord is a single occupancy record: one guest bound to one
// house under one contract. Several records share a houseId when a
// room has co-tenants.
type GuestRecord struct {
	ID               int64  `json:"id"`
	GuestsID         int64  `json:"guestsId"`
	HouseID          int64  `json:"houseId"`
	HouseName        string `json:"houseName"`
	TenantName       string `json:"tenantName"`
	Mobile           string `json:"mobile"`
	IsMain           int    `json:"isMain"` // 1 = primary contract signatory
	CertificateNum   string `json:"certificateNum"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyMobile  string `json:"emergencyMobile"`
	SignStatus       int    `json:"signStatus"`
	OccupancyFlag    int    `json:"occupancyFlag"`
	ContractID       int64  `json:"contractId"`
}

// TenantKey returns the stable identifier for this guest. GuestsID is
// preferred; records predating the guests table fall back to the row ID.
func (r *GuestRecord) TenantKey() string {
	if r.GuestsID != 0 {
		return strconv.FormatInt(r.GuestsID, 10)
	}
	if r.ID != 0 {
		return strconv.FormatInt(r.ID, 10)
	}
	return ""
}

// IsPrimary reports whether this guest is the primary contract signatory.
func (r *GuestRecord) IsPrimary() bool {
	return r.IsMain == 1
}
