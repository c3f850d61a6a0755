package model

import "time"

// Reservation records one half-hour slot held by a user in a room on a
// calendar date. A day is divided into 48 half-hour slots; Slot is the
// zero-based index into that grid (0 = midnight-00:30, 47 = 23:30-midnight).
//
// Fields:
//  ID        – primary key identifier.
//  Owner     – display name of the booking user (normalized, see utils.DisplayName).
//  Room      – room identifier. A single room is used today but the schema
//              supports several.
//  Date      – calendar day, stored as UTC midnight. No time-zone semantics
//              beyond "local calendar day".
//  Slot      – half-hour index within the day (0..47).
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // slots.id
	Owner     string    // slots.owner
	Room      string    // slots.room
	Date      time.Time // slots.slot_date
	Slot      int       // slots.slot_index
	CreatedAt time.Time // slots.created_at
}
