package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors for every expected outcome of Book and Cancel. Handlers
// distinguish them with errors.Is and translate them into the JSON result
// shape; none of these is ever fatal to the process.
var (
	// ErrInvalidSlot is returned when the slot index falls outside the
	// per-day grid (0..47 with the default configuration).
	ErrInvalidSlot = errors.New("slot index out of range")

	// ErrTooFarInAdvance is returned when the requested date exceeds the
	// advance-booking window.
	ErrTooFarInAdvance = errors.New("booked too far in advance")

	// ErrSlotAlreadyBooked is returned when the (date, room, slot) triple
	// is already reserved, by anyone.
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// ErrBlockTooLarge is returned when the booking would grow one of the
	// caller's contiguous blocks to the maximum size or beyond.
	ErrBlockTooLarge = errors.New("too many consecutive slots")

	// ErrInsufficientSpacing is returned when a new block would start too
	// close to one of the caller's existing blocks without touching it.
	ErrInsufficientSpacing = errors.New("not enough space between blocks")

	// ErrSlotNotBooked is returned when a cancellation targets a slot with
	// no reservation on that date.
	ErrSlotNotBooked = errors.New("slot not reserved")

	// ErrNotOwner is returned when a cancellation targets a reservation
	// held by somebody else.
	ErrNotOwner = errors.New("slot reserved by another user")

	// ErrInteriorSlotRemoval is returned when a cancellation targets a
	// slot in the middle of a block. Only the first or last slot of a
	// block may be removed, so blocks never get split.
	ErrInteriorSlotRemoval = errors.New("cannot remove slot in middle of block")

	// ErrStoreUnavailable wraps any SlotStore failure. The policy layer
	// never retries; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("slot store unavailable")
)

// storeFault tags a SlotStore failure so callers can match it with
// errors.Is(err, ErrStoreUnavailable) while keeping the cause visible.
func storeFault(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
