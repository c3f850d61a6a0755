package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dojoroom/room-booking/internal/booking"
	"github.com/dojoroom/room-booking/internal/cache"
	"github.com/dojoroom/room-booking/internal/model"
	"github.com/dojoroom/room-booking/internal/queue"
)

const dateLayout = "2006-01-02"

// ScheduleLister is the slice of the slot repository the schedule endpoint
// needs; the tests substitute an in-memory implementation.
type ScheduleLister interface {
	ListByDateRoom(ctx context.Context, date time.Time, room string) ([]model.Reservation, error)
}

// BookingHandler serves the schedule and the add/remove booking endpoints.
// The booking service enforces the actual rules; this layer parses
// requests, maps rule failures onto the wire format, keeps the schedule
// cache fresh, and publishes slot events.
type BookingHandler struct {
	Booking     *booking.Service
	Slots       ScheduleLister
	Cache       *cache.Schedule
	DefaultRoom string

	// PublishEvents enables best-effort RabbitMQ notifications. Off in
	// tests and when no broker is configured.
	PublishEvents bool
}

func NewBookingHandler(svc *booking.Service, slots ScheduleLister, sched *cache.Schedule, defaultRoom string) *BookingHandler {
	return &BookingHandler{Booking: svc, Slots: slots, Cache: sched, DefaultRoom: defaultRoom}
}

// statusResp is the wire format of booking mutations: {"status": true} on
// success, {"status": false, "message": ...} on a rule failure.
type statusResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

type addReq struct {
	Slot *int   `json:"slot"`
	Date string `json:"date"` // YYYY-MM-DD
	Room string `json:"room"`
}

type removeReq struct {
	Slot *int   `json:"slot"`
	Date string `json:"date"` // YYYY-MM-DD
}

// ruleMessage maps a booking rule failure to its user-facing message.
func ruleMessage(err error, slot int) string {
	switch {
	case errors.Is(err, booking.ErrInvalidSlot):
		return fmt.Sprintf("slot %d is not a valid slot index", slot)
	case errors.Is(err, booking.ErrTooFarInAdvance):
		return "booked too far in advance"
	case errors.Is(err, booking.ErrSlotAlreadyBooked):
		return fmt.Sprintf("slot %d is already booked", slot)
	case errors.Is(err, booking.ErrBlockTooLarge):
		return "cannot book this many consecutive slots"
	case errors.Is(err, booking.ErrInsufficientSpacing):
		return "not enough space left between blocks"
	case errors.Is(err, booking.ErrSlotNotBooked):
		return "slot not reserved"
	case errors.Is(err, booking.ErrNotOwner):
		return "slot is reserved by another user"
	case errors.Is(err, booking.ErrInteriorSlotRemoval):
		return "cannot remove a slot in the middle of a block"
	}
	return "booking failed"
}

// ownerName pulls the authenticated display name injected by the JWT
// middleware.
func ownerName(c echo.Context) (string, bool) {
	name, ok := c.Get("name").(string)
	return name, ok && name != ""
}

// Add handles POST /api/v1/add. Body: {"slot": N, "date": "YYYY-MM-DD",
// "room": "..."} (room optional, defaults to the configured room).
func (h *BookingHandler) Add(c echo.Context) error {
	owner, ok := ownerName(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req addReq
	if err := c.Bind(&req); err != nil || req.Slot == nil || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot and date are required"})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	room := req.Room
	if room == "" {
		room = h.DefaultRoom
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Booking.Book(ctx, owner, room, date, *req.Slot); err != nil {
		if errors.Is(err, booking.ErrStoreUnavailable) {
			log.Printf("booking: %v", err)
			return c.JSON(http.StatusServiceUnavailable, statusResp{Status: false, Message: "store unavailable"})
		}
		return c.JSON(http.StatusOK, statusResp{Status: false, Message: ruleMessage(err, *req.Slot)})
	}

	h.Cache.Invalidate(ctx, req.Date, room)
	h.publish(queue.SlotEvent{
		Action: queue.ActionBooked,
		Owner:  owner,
		Room:   room,
		Date:   req.Date,
		Slot:   *req.Slot,
		At:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, statusResp{Status: true})
}

// Remove handles POST /api/v1/remove. Body: {"slot": N, "date":
// "YYYY-MM-DD"}. The room is not part of the request; it is recovered from
// the reservation found at that date and slot.
func (h *BookingHandler) Remove(c echo.Context) error {
	owner, ok := ownerName(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req removeReq
	if err := c.Bind(&req); err != nil || req.Slot == nil || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot and date are required"})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Booking.Cancel(ctx, owner, date, *req.Slot)
	if err != nil {
		if errors.Is(err, booking.ErrStoreUnavailable) {
			log.Printf("booking: %v", err)
			return c.JSON(http.StatusServiceUnavailable, statusResp{Status: false, Message: "store unavailable"})
		}
		return c.JSON(http.StatusOK, statusResp{Status: false, Message: ruleMessage(err, *req.Slot)})
	}

	h.Cache.Invalidate(ctx, req.Date, res.Room)
	h.publish(queue.SlotEvent{
		Action: queue.ActionReleased,
		Owner:  owner,
		Room:   res.Room,
		Date:   req.Date,
		Slot:   *req.Slot,
		At:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, statusResp{Status: true})
}

// scheduleEntry is one row of the schedule listing.
type scheduleEntry struct {
	Date  string `json:"date"`
	Slot  int    `json:"slot"`
	Owner string `json:"owner"`
}

// Schedule handles GET /api/v1/schedule?date=YYYY-MM-DD&room=... and
// returns all reservations for that day and room. Responses are cached per
// (date, room) until the next booking or cancellation touches the pair.
func (h *BookingHandler) Schedule(c echo.Context) error {
	dateParam := c.QueryParam("date")
	if dateParam == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	date, err := time.Parse(dateLayout, dateParam)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	room := c.QueryParam("room")
	if room == "" {
		room = h.DefaultRoom
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if payload, ok := h.Cache.Get(ctx, dateParam, room); ok {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSONBlob(http.StatusOK, payload)
	}

	reservations, err := h.Slots.ListByDateRoom(ctx, date, room)
	if err != nil {
		log.Printf("schedule: list failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}

	entries := make([]scheduleEntry, 0, len(reservations))
	for _, r := range reservations {
		entries = append(entries, scheduleEntry{
			Date:  r.Date.Format(dateLayout),
			Slot:  r.Slot,
			Owner: r.Owner,
		})
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode failed"})
	}

	h.Cache.Set(ctx, dateParam, room, payload)
	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSONBlob(http.StatusOK, payload)
}

// publish fires a slot event without blocking the request; publishing is
// best effort and a broker outage must never fail a booking.
func (h *BookingHandler) publish(ev queue.SlotEvent) {
	if !h.PublishEvents {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.PublishSlotEvent(ctx, ev)
	}()
}
