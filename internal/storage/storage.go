package storage

import "errors"

var (
	ErrRequestNotFound      = errors.New("booking request not found")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrConflict             = errors.New("status changed concurrently")
	ErrVenueHasOpenRequests = errors.New("venue has open booking requests")
)
