package booking

import (
	"context"
	"errors"
	"time"

	"github.com/dojoroom/room-booking/internal/model"
)

// Store-level sentinels. Implementations translate their backend's errors
// into these so the policy code stays free of driver details.
var (
	// ErrNoReservation is returned by the Find methods when no matching
	// reservation exists.
	ErrNoReservation = errors.New("no such reservation")

	// ErrDuplicateSlot is returned by Insert when the (date, room, slot)
	// uniqueness constraint is violated. This is the backstop for two
	// requests racing past the double-booking check; Book reports it as
	// ErrSlotAlreadyBooked.
	ErrDuplicateSlot = errors.New("duplicate slot")
)

// SlotStore is the persistence interface the booking rules run against.
// The production implementation is repository.SlotRepo on MySQL; tests use
// an in-memory fake.
type SlotStore interface {
	// FindByDateRoomSlot returns the reservation at exactly (date, room,
	// slot), or ErrNoReservation.
	FindByDateRoomSlot(ctx context.Context, date time.Time, room string, slot int) (model.Reservation, error)

	// FindByDateOwnerRoom returns all of owner's reservations for the day
	// and room, ordered by slot ascending.
	FindByDateOwnerRoom(ctx context.Context, date time.Time, owner, room string) ([]model.Reservation, error)

	// FindByDateSlot returns the reservation at (date, slot) regardless of
	// room, or ErrNoReservation. Cancellation uses it to recover the room.
	FindByDateSlot(ctx context.Context, date time.Time, slot int) (model.Reservation, error)

	// Insert persists a new reservation. Returns ErrDuplicateSlot when the
	// (date, room, slot) key is already taken.
	Insert(ctx context.Context, r model.Reservation) error

	// Delete removes the reservation.
	Delete(ctx context.Context, r model.Reservation) error
}
