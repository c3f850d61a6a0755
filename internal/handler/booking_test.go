package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoroom/room-booking/internal/booking"
	"github.com/dojoroom/room-booking/internal/cache"
	"github.com/dojoroom/room-booking/internal/model"
)

// fakeSlots is an in-memory booking.SlotStore and ScheduleLister.
type fakeSlots struct {
	rows []model.Reservation
}

func (f *fakeSlots) FindByDateRoomSlot(_ context.Context, date time.Time, room string, slot int) (model.Reservation, error) {
	for _, r := range f.rows {
		if r.Date.Equal(date) && r.Room == room && r.Slot == slot {
			return r, nil
		}
	}
	return model.Reservation{}, booking.ErrNoReservation
}

func (f *fakeSlots) FindByDateOwnerRoom(_ context.Context, date time.Time, owner, room string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.rows {
		if r.Date.Equal(date) && r.Owner == owner && r.Room == room {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (f *fakeSlots) FindByDateSlot(_ context.Context, date time.Time, slot int) (model.Reservation, error) {
	for _, r := range f.rows {
		if r.Date.Equal(date) && r.Slot == slot {
			return r, nil
		}
	}
	return model.Reservation{}, booking.ErrNoReservation
}

func (f *fakeSlots) Insert(_ context.Context, r model.Reservation) error {
	for _, existing := range f.rows {
		if existing.Date.Equal(r.Date) && existing.Room == r.Room && existing.Slot == r.Slot {
			return booking.ErrDuplicateSlot
		}
	}
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeSlots) Delete(_ context.Context, r model.Reservation) error {
	for i, existing := range f.rows {
		if existing.Date.Equal(r.Date) && existing.Room == r.Room && existing.Slot == r.Slot {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return booking.ErrNoReservation
}

func (f *fakeSlots) ListByDateRoom(_ context.Context, date time.Time, room string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.rows {
		if r.Date.Equal(date) && r.Room == room {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

// testDate is tomorrow, always inside the advance-booking window.
var testDate = time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

func newTestHandler() (*BookingHandler, *fakeSlots) {
	slots := &fakeSlots{}
	svc := booking.NewService(slots, booking.Config{})
	return NewBookingHandler(svc, slots, nil, "4c"), slots
}

// call runs an echo request against h with the authenticated name set, the
// way the JWT middleware would.
func call(t *testing.T, h echo.HandlerFunc, method, target, body, name string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if name != "" {
		c.Set("name", name)
	}
	require.NoError(t, h(c))
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResp {
	t.Helper()
	var resp statusResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAdd(t *testing.T) {
	h, slots := newTestHandler()
	body := `{"slot": 8, "date": "` + testDate + `"}`

	rec := call(t, h.Add, http.MethodPost, "/api/v1/add", body, "Alice Smith")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeStatus(t, rec).Status)
	require.Len(t, slots.rows, 1)
	assert.Equal(t, "4c", slots.rows[0].Room) // default room applied
	assert.Equal(t, "Alice Smith", slots.rows[0].Owner)

	// Same slot again: rule failure travels as status=false, not an HTTP error.
	rec = call(t, h.Add, http.MethodPost, "/api/v1/add", body, "Alice Smith")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.False(t, resp.Status)
	assert.Contains(t, resp.Message, "already booked")
}

func TestAddValidation(t *testing.T) {
	h, _ := newTestHandler()

	rec := call(t, h.Add, http.MethodPost, "/api/v1/add", `{"date": "`+testDate+`"}`, "Alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code) // slot missing

	rec = call(t, h.Add, http.MethodPost, "/api/v1/add", `{"slot": 8, "date": "10/03/2026"}`, "Alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code) // bad date format

	rec = call(t, h.Add, http.MethodPost, "/api/v1/add", `{"slot": 8, "date": "`+testDate+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code) // no identity in context
}

func TestRemove(t *testing.T) {
	h, slots := newTestHandler()
	day, _ := time.Parse("2006-01-02", testDate)
	for _, s := range []int{10, 11, 12} {
		slots.rows = append(slots.rows, model.Reservation{Owner: "Alice", Room: "4c", Date: day, Slot: s})
	}

	rec := call(t, h.Remove, http.MethodPost, "/api/v1/remove", `{"slot": 11, "date": "`+testDate+`"}`, "Alice")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.False(t, resp.Status)
	assert.Contains(t, resp.Message, "middle of a block")

	rec = call(t, h.Remove, http.MethodPost, "/api/v1/remove", `{"slot": 12, "date": "`+testDate+`"}`, "Alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeStatus(t, rec).Status)
	assert.Len(t, slots.rows, 2)

	// Bob cannot remove Alice's slot even at an edge.
	rec = call(t, h.Remove, http.MethodPost, "/api/v1/remove", `{"slot": 10, "date": "`+testDate+`"}`, "Bob")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeStatus(t, rec)
	assert.False(t, resp.Status)
	assert.Contains(t, resp.Message, "another user")
}

// memRedis implements cache.Client over a map for cache-path tests.
type memRedis struct{ data map[string]string }

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := m.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(0, nil)
}

func TestScheduleCache(t *testing.T) {
	h, slots := newTestHandler()
	h.Cache = cache.NewSchedule(&memRedis{data: map[string]string{}}, time.Minute)
	day, _ := time.Parse("2006-01-02", testDate)
	slots.rows = append(slots.rows, model.Reservation{Owner: "Alice", Room: "4c", Date: day, Slot: 9})

	target := "/api/v1/schedule?date=" + testDate + "&room=4c"

	rec := call(t, h.Schedule, http.MethodGet, target, "", "Alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	firstBody := rec.Body.String()

	rec = call(t, h.Schedule, http.MethodGet, target, "", "Alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, firstBody, rec.Body.String())

	// A booking for the pair invalidates the entry; the next read misses
	// and sees the new reservation.
	rec = call(t, h.Add, http.MethodPost, "/api/v1/add", `{"slot": 20, "date": "`+testDate+`"}`, "Alice")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeStatus(t, rec).Status)

	rec = call(t, h.Schedule, http.MethodGet, target, "", "Alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var entries []scheduleEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
}

func TestSchedule(t *testing.T) {
	h, slots := newTestHandler()
	day, _ := time.Parse("2006-01-02", testDate)
	slots.rows = append(slots.rows,
		model.Reservation{Owner: "Alice", Room: "4c", Date: day, Slot: 9},
		model.Reservation{Owner: "Bob", Room: "4c", Date: day, Slot: 3},
		model.Reservation{Owner: "Carol", Room: "2a", Date: day, Slot: 3},
	)

	rec := call(t, h.Schedule, http.MethodGet, "/api/v1/schedule?date="+testDate+"&room=4c", "", "Alice")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []scheduleEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2) // room 2a excluded
	assert.Equal(t, scheduleEntry{Date: testDate, Slot: 3, Owner: "Bob"}, entries[0])
	assert.Equal(t, scheduleEntry{Date: testDate, Slot: 9, Owner: "Alice"}, entries[1])

	rec = call(t, h.Schedule, http.MethodGet, "/api/v1/schedule", "", "Alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code) // date required
}
