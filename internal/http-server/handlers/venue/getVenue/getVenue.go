package getVenue

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/errmap"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Response struct {
	response.Response
	Venue *models.Venue `json:"venue,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=VenueGetter
type VenueGetter interface {
	Get(ctx context.Context, actor *models.Actor, id string) (*models.Venue, error)
}

func New(log *slog.Logger, getter VenueGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.getVenue.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("venue id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("venue id is required"))
			return
		}

		v, err := getter.Get(r.Context(), mwauth.ActorFromContext(r.Context()), id)
		if err != nil {
			log.Error("failed to get venue", sl.Err(err), slog.String("venue_id", id))
			errmap.Render(w, r, err, "failed to get venue")
			return
		}

		log.Info("venue retrieved", slog.String("venue_id", id))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Venue:    v,
		})
	}
}
