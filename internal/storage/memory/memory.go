// Package memory keeps requests, venues and outbox events in process memory.
// It backs the "memory" storage mode and the tests; the postgres package is the
// durable implementation of the same contracts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage"
)

type Storage struct {
	mu       sync.Mutex
	requests map[string]models.BookingRequest
	venues   map[string]models.Venue
	// events holds the outbox rows not yet published, oldest first.
	events []models.RequestEvent
}

func New() *Storage {
	return &Storage{
		requests: make(map[string]models.BookingRequest),
		venues:   make(map[string]models.Venue),
	}
}

func (s *Storage) Close() error { return nil }

func (s *Storage) CreateRequest(_ context.Context, req *models.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.venues[req.VenueID]; !ok || v.Status != models.VenueActive {
		return storage.ErrVenueNotFound
	}

	s.requests[req.ID] = req.Clone()
	s.record(models.EventSubmitted, *req, req.CreatedAt)

	return nil
}

func (s *Storage) LoadRequest(_ context.Context, id string) (*models.BookingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, storage.ErrRequestNotFound
	}

	out := req.Clone()
	return &out, nil
}

// SaveRequest overwrites the stored record only while its status is still expected.
func (s *Storage) SaveRequest(_ context.Context, req *models.BookingRequest, expected models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.requests[req.ID]
	if !ok {
		return storage.ErrRequestNotFound
	}
	if cur.Status != expected {
		return storage.ErrConflict
	}

	next := req.Clone()
	next.VenueID = cur.VenueID
	next.RequesterID = cur.RequesterID
	next.Contact = cur.Contact
	next.CreatedAt = cur.CreatedAt
	s.requests[req.ID] = next

	if next.Status != cur.Status {
		s.record(models.EventForStatus(next.Status), next, next.UpdatedAt)
	} else {
		s.record(models.EventEdited, next, next.UpdatedAt)
	}

	return nil
}

func (s *Storage) DeleteRequest(_ context.Context, id string, expected models.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.requests[id]
	if !ok {
		return storage.ErrRequestNotFound
	}
	if cur.Status != expected {
		return storage.ErrConflict
	}

	delete(s.requests, id)
	s.record(models.EventDeleted, cur, at)

	return nil
}

// ListRequests returns matching requests, newest first.
func (s *Storage) ListRequests(_ context.Context, f models.RequestFilter) ([]models.BookingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.BookingRequest, 0)
	for _, r := range s.requests {
		if f.RequesterID != "" && (r.RequesterID == nil || *r.RequesterID != f.RequesterID) {
			continue
		}
		if f.OwnerID != "" && s.venues[r.VenueID].OwnerID != f.OwnerID {
			continue
		}
		if f.VenueID != "" && r.VenueID != f.VenueID {
			continue
		}
		if !f.HasStatus(r.Status) {
			continue
		}
		if !f.CreatedFrom.IsZero() && r.CreatedAt.Before(f.CreatedFrom) {
			continue
		}
		out = append(out, r.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (s *Storage) CreateVenue(_ context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.venues[v.ID] = cloneVenue(*v)
	return nil
}

func (s *Storage) GetVenue(_ context.Context, id string) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, storage.ErrVenueNotFound
	}

	out := cloneVenue(v)
	return &out, nil
}

// ListVenues returns venues by name; an empty status lists all of them.
func (s *Storage) ListVenues(_ context.Context, status models.VenueStatus) ([]models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		if status != "" && v.Status != status {
			continue
		}
		out = append(out, cloneVenue(v))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (s *Storage) SetVenueStatus(_ context.Context, id string, status models.VenueStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok {
		return storage.ErrVenueNotFound
	}

	v.Status = status
	v.UpdatedAt = at
	s.venues[id] = v

	return nil
}

// DeleteVenue refuses while the venue still has pending or approved requests.
func (s *Storage) DeleteVenue(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return storage.ErrVenueNotFound
	}

	for _, r := range s.requests {
		if r.VenueID == id && r.Status.Open() {
			return storage.ErrVenueHasOpenRequests
		}
	}

	delete(s.venues, id)
	return nil
}

// UnpublishedEvents returns up to limit events in the order they were recorded.
func (s *Storage) UnpublishedEvents(_ context.Context, limit int) ([]models.RequestEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.events)
	if limit > 0 {
		n = min(limit, n)
	}
	out := make([]models.RequestEvent, n)
	copy(out, s.events[:n])

	return out, nil
}

func (s *Storage) MarkEventsPublished(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := make(map[string]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}

	kept := s.events[:0]
	for _, ev := range s.events {
		if !done[ev.ID] {
			kept = append(kept, ev)
		}
	}
	s.events = kept

	return nil
}

func (s *Storage) record(typ string, r models.BookingRequest, at time.Time) {
	s.events = append(s.events, models.RequestEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		RequestID:  r.ID,
		VenueID:    r.VenueID,
		Status:     r.Status,
		OccurredAt: at,
	})
}

func cloneVenue(v models.Venue) models.Venue {
	if v.Capacity != nil {
		c := *v.Capacity
		v.Capacity = &c
	}
	if v.AveragePrice != nil {
		p := *v.AveragePrice
		v.AveragePrice = &p
	}
	if v.Amenities != nil {
		v.Amenities = append([]string{}, v.Amenities...)
	}
	return v
}
