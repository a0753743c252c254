// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package roomid parses upstream house-name identifiers into
// structured room coordinates.
//
// Identifiers follow the pattern
//
//	<prefix>-A<building>栋-<unit>单元-<roomCode>
//
// e.g. "之寓·未来-A4栋-1单元-1205" is building 4, unit 1, room code
// 1205. The room code splits positionally: the trailing two digits are
// the room's index within its floor, the leading digits the floor.
// Codes shorter than three digits belong to floor 1.
package roomid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/roomatlas/roomatlas/internal/models"
)

// ErrMalformedIdentifier reports a house name that does not match the
// expected identifier pattern. Callers skip such records and continue.
var ErrMalformedIdentifier = errors.New("malformed room identifier")

// DefaultPrefix is the complex name prefix of the upstream identifiers.
const DefaultPrefix = "之寓·未来"

// Parser decodes house-name identifiers for one residential complex.
// The zero value is not usable; construct with NewParser.
type Parser struct {
	prefix string
	re     *regexp.Regexp
}

// NewParser returns a Parser for identifiers carrying the given
// complex name prefix. An empty prefix selects DefaultPrefix.
func NewParser(prefix string) *Parser {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Parser{
		prefix: prefix,
		re:     regexp.MustCompile(regexp.QuoteMeta(prefix) + `-A(\d+)栋-(\d+)单元-(\d+)`),
	}
}

// Parse decodes a full house-name identifier into room coordinates.
// Returns ErrMalformedIdentifier when the name does not match the
// pattern.
func (p *Parser) Parse(houseName string) (models.RoomCoordinates, error) {
	m := p.re.FindStringSubmatch(houseName)
	if m == nil {
		return models.RoomCoordinates{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, houseName)
	}

	floor, roomInFloor := SplitRoomCode(m[3])
	return models.RoomCoordinates{
		Building:    m[1],
		Unit:        m[2],
		RoomNumber:  m[3],
		Floor:       floor,
		RoomInFloor: roomInFloor,
	}, nil
}

// Prefix returns the complex name prefix this parser matches.
func (p *Parser) Prefix() string {
	return p.prefix
}

// SplitRoomCode decodes a numeric room code into floor and
// room-in-floor. The final two digits index the room within the floor;
// the remaining leading digits are the floor number. Codes with fewer
// than three digits sit on floor 1 and the whole code is the room index.
func SplitRoomCode(code string) (floor, roomInFloor int) {
	if len(code) >= 3 {
		floor, _ = strconv.Atoi(code[:len(code)-2])
		roomInFloor, _ = strconv.Atoi(code[len(code)-2:])
		if floor == 0 {
			floor = 1
		}
		return floor, roomInFloor
	}
	roomInFloor, _ = strconv.Atoi(code)
	return 1, roomInFloor
}

// FormatRoomCode is the inverse of SplitRoomCode: floor 12 room 5
// becomes "1205", floor 1 room 7 becomes "107".
func FormatRoomCode(floor, roomInFloor int) string {
	return fmt.Sprintf("%d%02d", floor, roomInFloor)
}
