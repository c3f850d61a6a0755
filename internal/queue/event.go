// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Actions carried by SlotEvent.
const (
	ActionBooked   = "booked"
	ActionReleased = "released"
)

// SlotEvent is published whenever a slot is booked or released. It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type SlotEvent struct {
	Action string `json:"action"` // "booked" or "released"
	Owner  string `json:"owner"`
	Room   string `json:"room"`
	Date   string `json:"date"` // YYYY-MM-DD
	Slot   int    `json:"slot"`
	At     string `json:"at"` // RFC 3339 timestamp of the change
}
