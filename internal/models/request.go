package models

import (
	"math"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Statuses lists every status a booking request can be in.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCanceled}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCanceled
}

// Open reports whether the request still holds a claim on its venue.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) String() string { return string(s) }

type Contact struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
}

func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

type BookingRequest struct {
	ID          string    `json:"id"`
	VenueID     string    `json:"venue_id"`
	RequesterID *string   `json:"requester_id"`
	Contact     Contact   `json:"contact"`
	PartySize   int       `json:"party_size"`
	ArrivalTime time.Time `json:"arrival_time"`
	PriceOffer  float64   `json:"price_offer"`
	Notes       string    `json:"notes"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers never share the requester pointer.
func (r BookingRequest) Clone() BookingRequest {
	if r.RequesterID != nil {
		id := *r.RequesterID
		r.RequesterID = &id
	}
	return r
}

// Draft carries the requester-supplied fields of a new booking request.
type Draft struct {
	VenueID     string    `validate:"required"`
	Contact     Contact
	PartySize   int       `validate:"gte=1"`
	ArrivalTime time.Time `validate:"required"`
	PriceOffer  float64   `validate:"gte=0,lte=9999999999.99"`
	Notes       string    `validate:"max=2000"`
}

// Patch carries the editable fields of a pending request; nil fields are left untouched.
type Patch struct {
	PartySize   *int       `validate:"omitempty,gte=1"`
	ArrivalTime *time.Time `validate:"omitempty"`
	PriceOffer  *float64   `validate:"omitempty,gte=0,lte=9999999999.99"`
	Notes       *string    `validate:"omitempty,max=2000"`
}

func (p Patch) Empty() bool {
	return p.PartySize == nil && p.ArrivalTime == nil && p.PriceOffer == nil && p.Notes == nil
}

// Cents rounds an amount to the two decimals money is stored with.
func Cents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Instant truncates t to the microsecond precision timestamps are stored with.
func Instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
