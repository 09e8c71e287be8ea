package models

import "time"

const (
	EventSubmitted = "request.submitted"
	EventEdited    = "request.edited"
	EventDeleted   = "request.deleted"
)

// EventForStatus names the event recorded when a request moves into s.
func EventForStatus(s Status) string {
	return "request." + string(s)
}

// RequestEvent is an outbox row describing a lifecycle change of a booking request.
type RequestEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	RequestID  string    `json:"request_id"`
	VenueID    string    `json:"venue_id"`
	Status     Status    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
