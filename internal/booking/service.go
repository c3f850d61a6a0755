package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dojoroom/room-booking/internal/model"
)

// Config carries the booking rule parameters. The defaults reproduce the
// house rules: half-hour slots, two hours of empty time between a user's
// non-touching blocks, bookings at most 30 days out, and at most four
// consecutive slots per user.
type Config struct {
	SlotLength     time.Duration // length of one slot
	MinGap         time.Duration // required empty time between non-adjacent blocks of one owner
	MaxAdvanceDays int           // how many days ahead a slot may be booked
	MaxSlots       int           // maximum contiguous slots one owner may hold
	DaySlots       int           // slots per day; the valid index range is [0, DaySlots)
}

// DefaultConfig returns the standard rule set.
func DefaultConfig() Config {
	return Config{
		SlotLength:     30 * time.Minute,
		MinGap:         2 * time.Hour,
		MaxAdvanceDays: 30,
		MaxSlots:       4,
		DaySlots:       48,
	}
}

// gapSlots converts the minimum gap into a slot count (4 with defaults). A
// non-adjacent edge at this distance or closer blocks a new booking.
func (c Config) gapSlots() int {
	return int(c.MinGap / c.SlotLength)
}

// Service validates and commits bookings and cancellations against a
// SlotStore. It is stateless apart from its dependencies and safe for
// concurrent use; atomicity of check-then-insert is delegated to the
// store's uniqueness constraint (see Book).
type Service struct {
	store SlotStore
	cfg   Config
	now   func() time.Time
}

// NewService returns a Service using cfg, or DefaultConfig when cfg is the
// zero value.
func NewService(store SlotStore, cfg Config) *Service {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Service{store: store, cfg: cfg, now: time.Now}
}

// Book reserves slot in room on date for owner. Checks run in a fixed
// order and the first failure wins, with no side effects: slot range,
// advance window, double booking, block size, block spacing. On success
// exactly one reservation is inserted.
//
// Book is not idempotent: repeating a successful call fails with
// ErrSlotAlreadyBooked. Two concurrent calls for the same slot may both
// pass the double-booking check; the store's (date, room, slot) unique key
// decides the winner and the loser also gets ErrSlotAlreadyBooked.
func (s *Service) Book(ctx context.Context, owner, room string, date time.Time, slot int) error {
	if slot < 0 || slot >= s.cfg.DaySlots {
		return ErrInvalidSlot
	}

	date = midnight(date)
	today := midnight(s.now().UTC())
	if int(date.Sub(today).Hours()/24) > s.cfg.MaxAdvanceDays {
		return ErrTooFarInAdvance
	}

	_, err := s.store.FindByDateRoomSlot(ctx, date, room, slot)
	switch {
	case err == nil:
		return ErrSlotAlreadyBooked
	case !errors.Is(err, ErrNoReservation):
		return storeFault(err)
	}

	existing, err := s.store.FindByDateOwnerRoom(ctx, date, owner, room)
	if err != nil {
		return storeFault(err)
	}
	slots := make([]int, len(existing))
	for i, r := range existing {
		slots[i] = r.Slot
	}
	edges := FindBlockEdges(slots)

	// Block-size rule. Edges alternate (start, end); growing a block means
	// sitting directly below a start (even index) or directly above an end
	// (odd index). The span is measured against the opposite edge of that
	// same pair. The even/odd pairing is load-bearing: it is what rejects
	// a fifth consecutive slot while allowing a fourth.
	for i, edge := range edges {
		if edge-slot == 1 && i%2 == 0 {
			if edges[i+1]-slot >= s.cfg.MaxSlots {
				return ErrBlockTooLarge
			}
		} else if slot-edge == 1 && i%2 == 1 {
			if slot-edges[i-1] >= s.cfg.MaxSlots {
				return ErrBlockTooLarge
			}
		}
	}

	// Spacing rule, only meaningful when the owner holds other slots.
	// Touching an existing block (distance 1) is always allowed; otherwise
	// every nearby edge must be more than gapSlots away.
	if len(edges) != 0 {
		gap := s.cfg.gapSlots()
		for _, edge := range nearestEdges(edges, slot) {
			d := edge - slot
			if d < 0 {
				d = -d
			}
			if d != 1 && d <= gap {
				return ErrInsufficientSpacing
			}
		}
	}

	err = s.store.Insert(ctx, model.Reservation{
		Owner: owner,
		Room:  room,
		Date:  date,
		Slot:  slot,
	})
	switch {
	case errors.Is(err, ErrDuplicateSlot):
		return ErrSlotAlreadyBooked
	case err != nil:
		return storeFault(err)
	}
	return nil
}

// Cancel removes owner's reservation at (date, slot). The room is not part
// of the request; it is recovered from whatever reservation sits at that
// date and slot. Only the first or last slot of a contiguous block may be
// removed. The removed reservation is returned so callers can invalidate
// caches and publish events for the right room.
func (s *Service) Cancel(ctx context.Context, owner string, date time.Time, slot int) (model.Reservation, error) {
	date = midnight(date)

	res, err := s.store.FindByDateSlot(ctx, date, slot)
	switch {
	case errors.Is(err, ErrNoReservation):
		return model.Reservation{}, ErrSlotNotBooked
	case err != nil:
		return model.Reservation{}, storeFault(err)
	}
	if res.Owner != owner {
		return model.Reservation{}, ErrNotOwner
	}

	existing, err := s.store.FindByDateOwnerRoom(ctx, date, owner, res.Room)
	if err != nil {
		return model.Reservation{}, storeFault(err)
	}
	slots := make([]int, len(existing))
	for i, r := range existing {
		slots[i] = r.Slot
	}

	edge := false
	for _, e := range FindBlockEdges(slots) {
		if e == slot {
			edge = true
			break
		}
	}
	if !edge {
		return model.Reservation{}, ErrInteriorSlotRemoval
	}

	if err := s.store.Delete(ctx, res); err != nil {
		return model.Reservation{}, storeFault(err)
	}
	return res, nil
}

// nearestEdges narrows the edge list to the few edges around slot that the
// spacing rule needs to inspect: insert slot into the sorted edge list and
// keep a three-wide window starting just before it, minus slot itself.
// When slot sorts first there is no edge below it and only the single next
// edge is compared.
func nearestEdges(edges []int, slot int) []int {
	all := append(append(make([]int, 0, len(edges)+1), edges...), slot)
	sort.Ints(all)

	pos := sort.SearchInts(all, slot)
	if pos == 0 {
		return all[1:2]
	}
	hi := pos + 2
	if hi > len(all) {
		hi = len(all)
	}

	out := make([]int, 0, 2)
	removed := false
	for _, e := range all[pos-1 : hi] {
		if e == slot && !removed {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return out
}

// midnight truncates t to its UTC calendar day.
func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
