// Package lifecycle owns the booking request state machine. It decides whether a
// transition or edit is legal for a given record and actor, and hands the result to
// persistence with the prior status so concurrent writers are detected there.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage"
)

// Repository is the persistence capability. SaveRequest and DeleteRequest must fail
// with storage.ErrConflict when the stored status differs from expected. The deleted
// event of DeleteRequest is stamped with at.
type Repository interface {
	CreateRequest(ctx context.Context, req *models.BookingRequest) error
	LoadRequest(ctx context.Context, id string) (*models.BookingRequest, error)
	SaveRequest(ctx context.Context, req *models.BookingRequest, expected models.Status) error
	DeleteRequest(ctx context.Context, id string, expected models.Status, at time.Time) error
	ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.BookingRequest, error)
}

type VenueLookup interface {
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
}

// Authorizer answers who an actor is relative to a venue or a request.
type Authorizer interface {
	IsVenueOwner(ctx context.Context, actor *models.Actor, venue *models.Venue) bool
	IsRequester(ctx context.Context, actor *models.Actor, req *models.BookingRequest) bool
}

type Engine struct {
	requests Repository
	venues   VenueLookup
	auth     Authorizer
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func New(requests Repository, venues VenueLookup, auth Authorizer, opts ...Option) *Engine {
	e := &Engine{
		requests: requests,
		venues:   venues,
		auth:     auth,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	clock := e.now
	e.now = func() time.Time { return models.Instant(clock()) }

	return e
}

// Submit creates a pending request. A nil actor submits as a guest.
func (e *Engine) Submit(ctx context.Context, actor *models.Actor, d models.Draft) (*models.BookingRequest, error) {
	const op = "lifecycle.Submit"

	if err := e.validateDraft(&d); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	venue, err := e.venue(ctx, d.VenueID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if venue.Status != models.VenueActive {
		return nil, fmt.Errorf("%s: venue %s: %w", op, d.VenueID, models.ErrNotFound)
	}

	now := e.now()
	req := models.BookingRequest{
		ID:          e.newID(),
		VenueID:     venue.ID,
		Contact:     d.Contact,
		PartySize:   d.PartySize,
		ArrivalTime: d.ArrivalTime,
		PriceOffer:  d.PriceOffer,
		Notes:       d.Notes,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if actor != nil && actor.UserID != "" {
		id := actor.UserID
		req.RequesterID = &id
	}

	// The venue may have been hidden or deleted since it was looked up.
	if err := e.requests.CreateRequest(ctx, &req); err != nil {
		if errors.Is(err, storage.ErrVenueNotFound) {
			return nil, fmt.Errorf("%s: venue %s: %w", op, d.VenueID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &req, nil
}

func (e *Engine) Approve(ctx context.Context, actor *models.Actor, id string) (*models.BookingRequest, error) {
	return e.transition(ctx, "lifecycle.Approve", actor, id, ActionApprove)
}

func (e *Engine) Reject(ctx context.Context, actor *models.Actor, id string) (*models.BookingRequest, error) {
	return e.transition(ctx, "lifecycle.Reject", actor, id, ActionReject)
}

func (e *Engine) Complete(ctx context.Context, actor *models.Actor, id string) (*models.BookingRequest, error) {
	return e.transition(ctx, "lifecycle.Complete", actor, id, ActionComplete)
}

func (e *Engine) Cancel(ctx context.Context, actor *models.Actor, id string) (*models.BookingRequest, error) {
	return e.transition(ctx, "lifecycle.Cancel", actor, id, ActionCancel)
}

// Transition applies one of the status-changing actions.
func (e *Engine) Transition(ctx context.Context, actor *models.Actor, id string, action Action) (*models.BookingRequest, error) {
	switch action {
	case ActionApprove, ActionReject, ActionComplete, ActionCancel:
		return e.transition(ctx, "lifecycle.Transition", actor, id, action)
	}
	return nil, fmt.Errorf("lifecycle.Transition: %w", &models.TransitionError{Action: string(action)})
}

func (e *Engine) transition(ctx context.Context, op string, actor *models.Actor, id string, action Action) (*models.BookingRequest, error) {
	req, err := e.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := e.authorize(ctx, actor, action, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	next, err := Next(req.Status, action)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	prior := req.Status
	req.Status = next
	req.UpdatedAt = e.touch(req)

	if err := e.save(ctx, req, prior); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return req, nil
}

// Edit changes the mutable fields of a pending request on behalf of its requester.
func (e *Engine) Edit(ctx context.Context, actor *models.Actor, id string, p models.Patch) (*models.BookingRequest, error) {
	const op = "lifecycle.Edit"

	req, err := e.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := e.authorize(ctx, actor, ActionEdit, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := Next(req.Status, ActionEdit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := e.validatePatch(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.PartySize != nil {
		req.PartySize = *p.PartySize
	}
	if p.ArrivalTime != nil {
		req.ArrivalTime = *p.ArrivalTime
	}
	if p.PriceOffer != nil {
		req.PriceOffer = *p.PriceOffer
	}
	if p.Notes != nil {
		req.Notes = *p.Notes
	}
	req.UpdatedAt = e.touch(req)

	if err := e.save(ctx, req, models.StatusPending); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return req, nil
}

// Delete physically removes a pending request.
func (e *Engine) Delete(ctx context.Context, actor *models.Actor, id string) error {
	const op = "lifecycle.Delete"

	req, err := e.load(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := e.authorize(ctx, actor, ActionDelete, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := Next(req.Status, ActionDelete); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = e.requests.DeleteRequest(ctx, id, req.Status, e.touch(req))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storageErr(id, err))
	}

	return nil
}

// Get returns a request visible to the actor: its requester, the venue owner or an admin.
func (e *Engine) Get(ctx context.Context, actor *models.Actor, id string) (*models.BookingRequest, error) {
	const op = "lifecycle.Get"

	req, err := e.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if actor.Is(models.RoleAdmin) || e.auth.IsRequester(ctx, actor, req) {
		return req, nil
	}

	isOwner, err := e.isOwner(ctx, actor, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !isOwner {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotAuthorized)
	}

	return req, nil
}

func (e *Engine) load(ctx context.Context, id string) (*models.BookingRequest, error) {
	req, err := e.requests.LoadRequest(ctx, id)
	if err != nil {
		return nil, storageErr(id, err)
	}
	return req, nil
}

func (e *Engine) save(ctx context.Context, req *models.BookingRequest, prior models.Status) error {
	if err := e.requests.SaveRequest(ctx, req, prior); err != nil {
		return storageErr(req.ID, err)
	}
	return nil
}

func (e *Engine) venue(ctx context.Context, id string) (*models.Venue, error) {
	venue, err := e.venues.GetVenue(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrVenueNotFound) {
			return nil, fmt.Errorf("venue %s: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return venue, nil
}

func (e *Engine) authorize(ctx context.Context, actor *models.Actor, action Action, req *models.BookingRequest) error {
	if actor == nil {
		return models.ErrNotAuthorized
	}

	isRequester := e.auth.IsRequester(ctx, actor, req)
	if Permits(action, false, isRequester) {
		return nil
	}

	isOwner, err := e.isOwner(ctx, actor, req)
	if err != nil {
		return err
	}
	if !Permits(action, isOwner, isRequester) {
		return models.ErrNotAuthorized
	}

	return nil
}

// isOwner treats a request whose venue no longer exists as having no owner.
func (e *Engine) isOwner(ctx context.Context, actor *models.Actor, req *models.BookingRequest) (bool, error) {
	if actor == nil {
		return false, nil
	}

	venue, err := e.venue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return e.auth.IsVenueOwner(ctx, actor, venue), nil
}

// touch keeps updatedAt monotonic and never earlier than createdAt.
func (e *Engine) touch(req *models.BookingRequest) time.Time {
	now := e.now()
	if now.Before(req.UpdatedAt) {
		now = req.UpdatedAt
	}
	if now.Before(req.CreatedAt) {
		now = req.CreatedAt
	}
	return now
}

func storageErr(id string, err error) error {
	switch {
	case errors.Is(err, storage.ErrRequestNotFound):
		return fmt.Errorf("request %s: %w", id, models.ErrNotFound)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("request %s: %w: %w", id, models.ErrConflict, err)
	}
	return err
}
