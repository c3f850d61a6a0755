package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dojoroom/room-booking/internal/booking"
	"github.com/dojoroom/room-booking/internal/model"
)

// SlotRepo persists reservations in the `slots` table and implements
// booking.SlotStore. The table carries a UNIQUE KEY over
// (slot_date, room, slot_index); Insert relies on it to close the race
// between the double-booking check and the write.
//
// Schema:
//
//	CREATE TABLE slots (
//	    id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//	    owner      VARCHAR(190) NOT NULL,
//	    room       VARCHAR(64)  NOT NULL,
//	    slot_date  DATE         NOT NULL,
//	    slot_index INT          NOT NULL,
//	    created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    UNIQUE KEY uq_slot (slot_date, room, slot_index),
//	    KEY idx_owner (slot_date, owner, room)
//	);
type SlotRepo struct{ DB *sql.DB }

// NewSlotRepo returns a SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{DB: db} }

const slotColumns = "id, owner, room, slot_date, slot_index, created_at"

func scanSlot(row *sql.Row) (model.Reservation, error) {
	var r model.Reservation
	err := row.Scan(&r.ID, &r.Owner, &r.Room, &r.Date, &r.Slot, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Reservation{}, booking.ErrNoReservation
	}
	return r, err
}

// FindByDateRoomSlot returns the reservation at exactly (date, room, slot).
func (r *SlotRepo) FindByDateRoomSlot(ctx context.Context, date time.Time, room string, slot int) (model.Reservation, error) {
	return scanSlot(r.DB.QueryRowContext(ctx,
		"SELECT "+slotColumns+" FROM slots WHERE slot_date=? AND room=? AND slot_index=? LIMIT 1",
		date, room, slot))
}

// FindByDateOwnerRoom returns the owner's reservations for a day and room,
// ordered by slot ascending as the booking rules require.
func (r *SlotRepo) FindByDateOwnerRoom(ctx context.Context, date time.Time, owner, room string) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+slotColumns+" FROM slots WHERE slot_date=? AND owner=? AND room=? ORDER BY slot_index ASC",
		date, owner, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.Owner, &res.Room, &res.Date, &res.Slot, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// FindByDateSlot returns the reservation at (date, slot) in any room.
func (r *SlotRepo) FindByDateSlot(ctx context.Context, date time.Time, slot int) (model.Reservation, error) {
	return scanSlot(r.DB.QueryRowContext(ctx,
		"SELECT "+slotColumns+" FROM slots WHERE slot_date=? AND slot_index=? LIMIT 1",
		date, slot))
}

// Insert writes a reservation. A duplicate-key failure (MySQL error 1062)
// is reported as booking.ErrDuplicateSlot.
func (r *SlotRepo) Insert(ctx context.Context, res model.Reservation) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO slots (owner, room, slot_date, slot_index) VALUES (?,?,?,?)",
		res.Owner, res.Room, res.Date, res.Slot)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return booking.ErrDuplicateSlot
	}
	return err
}

// Delete removes the reservation at the unique (date, room, slot) key.
func (r *SlotRepo) Delete(ctx context.Context, res model.Reservation) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM slots WHERE slot_date=? AND room=? AND slot_index=?",
		res.Date, res.Room, res.Slot)
	return err
}

// ListByDateRoom returns every reservation for a day and room ordered by
// slot, for the schedule listing.
func (r *SlotRepo) ListByDateRoom(ctx context.Context, date time.Time, room string) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+slotColumns+" FROM slots WHERE slot_date=? AND room=? ORDER BY slot_index ASC",
		date, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.Owner, &res.Room, &res.Date, &res.Slot, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
