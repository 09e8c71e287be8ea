// Package venue manages the catalog of venues that booking requests target.
package venue

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/qwerty-development/revive-webapp/internal/lib/validate"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage"
)

type Store interface {
	CreateVenue(ctx context.Context, v *models.Venue) error
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	ListVenues(ctx context.Context, status models.VenueStatus) ([]models.Venue, error)
	SetVenueStatus(ctx context.Context, id string, status models.VenueStatus, at time.Time) error
	DeleteVenue(ctx context.Context, id string) error
}

// NewVenue is the input for adding a venue to the catalog.
type NewVenue struct {
	OwnerID      string             `json:"owner_id" validate:"required,max=100"`
	Name         string             `json:"name" validate:"required,max=200"`
	Location     string             `json:"location" validate:"max=500"`
	Type         string             `json:"type" validate:"max=100"`
	Description  string             `json:"description" validate:"max=5000"`
	Capacity     *int               `json:"capacity" validate:"omitempty,gte=1"`
	AveragePrice *float64           `json:"average_price" validate:"omitempty,gte=0,lte=9999999999.99"`
	Amenities    []string           `json:"amenities" validate:"max=50,dive,required,max=100"`
	Status       models.VenueStatus `json:"status" validate:"omitempty,oneof=active hidden"`
}

type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

func New(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		now:      func() time.Time { return models.Instant(time.Now()) },
		newID:    uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, actor *models.Actor, in NewVenue) (*models.Venue, error) {
	const op = "venue.Create"

	if !actor.Is(models.RoleAdmin) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotAuthorized)
	}

	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Name = strings.TrimSpace(in.Name)

	verr := validate.Fields(s.validate.Struct(in))
	if in.AveragePrice != nil && (math.IsNaN(*in.AveragePrice) || math.IsInf(*in.AveragePrice, 0)) {
		verr = validate.Add(verr, "average_price", "must be a finite amount")
	}
	if verr != nil {
		return nil, fmt.Errorf("%s: %w", op, verr)
	}

	if in.AveragePrice != nil {
		price := models.Cents(*in.AveragePrice)
		in.AveragePrice = &price
	}

	status := in.Status
	if status == "" {
		status = models.VenueActive
	}

	now := s.now()
	v := models.Venue{
		ID:           s.newID(),
		OwnerID:      in.OwnerID,
		Name:         in.Name,
		Location:     strings.TrimSpace(in.Location),
		Type:         strings.TrimSpace(in.Type),
		Description:  in.Description,
		Capacity:     in.Capacity,
		AveragePrice: in.AveragePrice,
		Amenities:    in.Amenities,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if v.Amenities == nil {
		v.Amenities = []string{}
	}

	if err := s.store.CreateVenue(ctx, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &v, nil
}

// Get returns an active venue to anyone; hidden venues are only visible to their owner and admins.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id string) (*models.Venue, error) {
	const op = "venue.Get"

	v, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(id, err))
	}

	if v.Status != models.VenueActive && !canSeeHidden(actor, v) {
		return nil, fmt.Errorf("%s: venue %s: %w", op, id, models.ErrNotFound)
	}

	return v, nil
}

// List returns the active venues, plus every hidden venue for admins and a store's own hidden venues.
func (s *Service) List(ctx context.Context, actor *models.Actor) ([]models.Venue, error) {
	const op = "venue.List"

	var status models.VenueStatus
	if actor == nil || actor.Role == models.RoleUser {
		status = models.VenueActive
	}

	venues, err := s.store.ListVenues(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if status != "" {
		return venues, nil
	}

	out := venues[:0]
	for _, v := range venues {
		if v.Status == models.VenueActive || canSeeHidden(actor, &v) {
			out = append(out, v)
		}
	}

	return out, nil
}

func (s *Service) SetStatus(ctx context.Context, actor *models.Actor, id string, status models.VenueStatus) (*models.Venue, error) {
	const op = "venue.SetStatus"

	if !actor.Is(models.RoleAdmin) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotAuthorized)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "must be one of: active hidden"))
	}

	if err := s.store.SetVenueStatus(ctx, id, status, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(id, err))
	}

	v, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(id, err))
	}

	return v, nil
}

// Delete removes a venue that has no pending or approved requests left.
func (s *Service) Delete(ctx context.Context, actor *models.Actor, id string) error {
	const op = "venue.Delete"

	if !actor.Is(models.RoleAdmin) {
		return fmt.Errorf("%s: %w", op, models.ErrNotAuthorized)
	}

	err := s.store.DeleteVenue(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrVenueHasOpenRequests):
		return fmt.Errorf("%s: venue %s: %w: %w", op, id, models.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, notFound(id, err))
	}
}

func canSeeHidden(actor *models.Actor, v *models.Venue) bool {
	return actor.Is(models.RoleAdmin) || (actor.Is(models.RoleStore) && v.OwnerID == actor.UserID)
}

func notFound(id string, err error) error {
	if errors.Is(err, storage.ErrVenueNotFound) {
		return fmt.Errorf("venue %s: %w", id, models.ErrNotFound)
	}
	return err
}
