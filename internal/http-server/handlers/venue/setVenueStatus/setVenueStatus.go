package setVenueStatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/errmap"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Request struct {
	Status models.VenueStatus `json:"status" validate:"required,oneof=active hidden"`
}

type Response struct {
	response.Response
	Venue *models.Venue `json:"venue,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=VenueStatusSetter
type VenueStatusSetter interface {
	SetStatus(ctx context.Context, actor *models.Actor, id string, status models.VenueStatus) (*models.Venue, error)
}

// New hides or re-activates a venue.
func New(log *slog.Logger, setter VenueStatusSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.setVenueStatus.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("venue id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("venue id is required"))
			return
		}

		log = log.With(slog.String("venue_id", id))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		v, err := setter.SetStatus(r.Context(), mwauth.ActorFromContext(r.Context()), id, req.Status)
		if err != nil {
			log.Error("failed to set venue status", sl.Err(err))
			errmap.Render(w, r, err, "failed to set venue status")
			return
		}

		log.Info("venue status changed", slog.String("status", string(v.Status)))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Venue:    v,
		})
	}
}
