package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/qwerty-development/revive-webapp/internal/analytics"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

// statsShardSize is how many requests one goroutine totals when computing statistics.
const statsShardSize = 50_000

// Scope returns the filter that limits an actor to the requests it may see:
// users see their own, stores see those for venues they own, admins see everything.
func Scope(actor *models.Actor) (models.RequestFilter, error) {
	if actor == nil {
		return models.RequestFilter{}, models.ErrNotAuthorized
	}

	switch actor.Role {
	case models.RoleAdmin:
		return models.RequestFilter{}, nil
	case models.RoleStore:
		return models.RequestFilter{OwnerID: actor.UserID}, nil
	case models.RoleUser:
		return models.RequestFilter{RequesterID: actor.UserID}, nil
	}

	return models.RequestFilter{}, models.ErrNotAuthorized
}

func (e *Engine) List(ctx context.Context, actor *models.Actor, q models.ListQuery) ([]models.BookingRequest, error) {
	const op = "lifecycle.List"

	filter, err := Scope(actor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	filter.VenueID = q.VenueID
	filter.Statuses = q.Statuses
	filter.CreatedFrom = q.Range.Since(e.now())

	reqs, err := e.requests.ListRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reqs = Search(reqs, q.Search)
	SortRequests(reqs, q.Sort)

	return reqs, nil
}

type StatsQuery struct {
	VenueID string
	Range   models.TimeRange
}

// Stats derives the analytics report over the requests visible to the actor.
func (e *Engine) Stats(ctx context.Context, actor *models.Actor, q StatsQuery) (analytics.Report, error) {
	const op = "lifecycle.Stats"

	filter, err := Scope(actor)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
	}
	filter.VenueID = q.VenueID

	var capacity *int
	if q.VenueID != "" {
		venue, err := e.venue(ctx, q.VenueID)
		switch {
		case err == nil:
			capacity = venue.Capacity
		case !errors.Is(err, models.ErrNotFound):
			return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	reqs, err := e.requests.ListRequests(ctx, filter)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	report, err := analytics.Build(ctx, reqs, analytics.Options{
		Now:      e.now(),
		Range:    q.Range,
		Capacity: capacity,
		Shards:   len(reqs)/statsShardSize + 1,
	})
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}

// Search keeps requests whose contact name, email or phone contains term, case-insensitively.
func Search(reqs []models.BookingRequest, term string) []models.BookingRequest {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return reqs
	}

	out := reqs[:0:0]
	for _, r := range reqs {
		if strings.Contains(strings.ToLower(r.Contact.FullName()), term) ||
			strings.Contains(strings.ToLower(r.Contact.Email), term) ||
			strings.Contains(r.Contact.PhoneNumber, term) {
			out = append(out, r)
		}
	}
	return out
}

func SortRequests(reqs []models.BookingRequest, order models.SortOrder) {
	var less func(a, b models.BookingRequest) bool

	switch order {
	case models.SortOldest:
		less = func(a, b models.BookingRequest) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case models.SortPriceHigh:
		less = func(a, b models.BookingRequest) bool { return a.PriceOffer > b.PriceOffer }
	case models.SortPriceLow:
		less = func(a, b models.BookingRequest) bool { return a.PriceOffer < b.PriceOffer }
	case models.SortDateNear:
		less = func(a, b models.BookingRequest) bool { return a.ArrivalTime.Before(b.ArrivalTime) }
	case models.SortDateFar:
		less = func(a, b models.BookingRequest) bool { return a.ArrivalTime.After(b.ArrivalTime) }
	default:
		less = func(a, b models.BookingRequest) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(reqs, func(i, j int) bool { return less(reqs[i], reqs[j]) })
}
