// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package sync

import (
	"sort"

	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/metrics"
	"github.com/roomatlas/roomatlas/internal/models"
	"github.com/roomatlas/roomatlas/internal/models/ams"
	"github.com/roomatlas/roomatlas/internal/roomid"
)

// Aggregator folds raw guest records into per-room occupancy.
type Aggregator struct {
	parser *roomid.Parser
}

// NewAggregator returns an Aggregator using the given identifier parser.
func NewAggregator(parser *roomid.Parser) *Aggregator {
	return &Aggregator{parser: parser}
}

// Aggregate groups records by house, decodes each house's room
// identifier, and builds occupied rooms plus the flat tenant list.
//
// Records missing a tenant identity or name are dropped. A house whose
// identifier does not parse is skipped whole; its records are counted
// as malformed. When several guests of one house claim primary
// signatory, the first (after deterministic ordering) wins and the
// anomaly is logged.
func (a *Aggregator) Aggregate(records []ams.GuestRecord) ([]models.Room, []models.Tenant) {
	groups := make(map[int64][]ams.GuestRecord)
	var houseIDs []int64
	dropped := 0

	for i := range records {
		r := records[i]
		if r.TenantKey() == "" || r.TenantName == "" {
			dropped++
			continue
		}
		if _, seen := groups[r.HouseID]; !seen {
			houseIDs = append(houseIDs, r.HouseID)
		}
		groups[r.HouseID] = append(groups[r.HouseID], r)
	}
	if dropped > 0 {
		logging.Warn().Int("dropped", dropped).Msg("Dropped records missing tenant identity")
	}

	// Deterministic processing order regardless of upstream page order.
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i] < houseIDs[j] })

	var (
		rooms   []models.Room
		tenants []models.Tenant
	)

	for _, houseID := range houseIDs {
		group := groups[houseID]

		coords, err := a.parser.Parse(group[0].HouseName)
		if err != nil {
			metrics.SyncMalformedRecords.Add(float64(len(group)))
			logging.Warn().
				Err(err).
				Int64("house_id", houseID).
				Str("house_name", group[0].HouseName).
				Int("records", len(group)).
				Msg("Skipping house with unparseable identifier")
			continue
		}

		room := models.Room{
			RoomNumber:  coords.RoomNumber,
			HouseID:     houseID,
			HouseName:   group[0].HouseName,
			Building:    coords.Building,
			Unit:        coords.Unit,
			Floor:       coords.Floor,
			RoomInFloor: coords.RoomInFloor,
			RoomType:    models.RoomTypeOccupied,
			Occupied:    true,
		}

		roomTenants := buildTenants(group, coords.RoomNumber)
		room.Tenants = roomTenants
		room.Capacity = len(roomTenants)

		rooms = append(rooms, room)
		tenants = append(tenants, roomTenants...)
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Floor != rooms[j].Floor {
			return rooms[i].Floor < rooms[j].Floor
		}
		return rooms[i].RoomInFloor < rooms[j].RoomInFloor
	})

	return rooms, tenants
}

// buildTenants converts one house's records into tenant documents.
// When several records claim primary signatory, the first in upstream
// record order wins; later claims are demoted with a warning. The
// result is sorted primary first, then by name, for presentation only.
func buildTenants(group []ams.GuestRecord, roomNumber string) []models.Tenant {
	tenants := make([]models.Tenant, 0, len(group))
	seen := make(map[string]bool, len(group))
	primarySeen := false

	for i := range group {
		r := group[i]
		key := r.TenantKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		primary := r.IsPrimary()
		if primary && primarySeen {
			logging.Warn().
				Int64("house_id", r.HouseID).
				Str("room", roomNumber).
				Str("demoted", r.TenantName).
				Msg("Multiple primary signatories for one room, keeping the first encountered")
			primary = false
		}
		if primary {
			primarySeen = true
		}

		tenants = append(tenants, models.Tenant{
			TenantID:         key,
			Name:             r.TenantName,
			Mobile:           r.Mobile,
			Primary:          primary,
			CertificateNum:   r.CertificateNum,
			EmergencyContact: r.EmergencyContact,
			EmergencyMobile:  r.EmergencyMobile,
			SignStatus:       r.SignStatus,
			OccupancyFlag:    r.OccupancyFlag,
			RoomNumber:       roomNumber,
		})
	}

	sort.SliceStable(tenants, func(i, j int) bool {
		if tenants[i].Primary != tenants[j].Primary {
			return tenants[i].Primary
		}
		return tenants[i].Name < tenants[j].Name
	})

	return tenants
}
