package models

import "time"

type VenueStatus string

const (
	VenueActive VenueStatus = "active"
	VenueHidden VenueStatus = "hidden"
)

func (s VenueStatus) Valid() bool {
	return s == VenueActive || s == VenueHidden
}

type Venue struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"owner_id"`
	Name         string      `json:"name"`
	Location     string      `json:"location"`
	Type         string      `json:"type"`
	Description  string      `json:"description"`
	Capacity     *int        `json:"capacity"`
	AveragePrice *float64    `json:"average_price"`
	Amenities    []string    `json:"amenities"`
	Status       VenueStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
