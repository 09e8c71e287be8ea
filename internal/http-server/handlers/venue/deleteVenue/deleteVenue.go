package deleteVenue

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=VenueDeleter
type VenueDeleter interface {
	Delete(ctx context.Context, actor *models.Actor, id string) error
}

func New(log *slog.Logger, deleter VenueDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.deleteVenue.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("venue id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("venue id is required"))
			return
		}

		if err := deleter.Delete(r.Context(), mwauth.ActorFromContext(r.Context()), id); err != nil {
			log.Error("failed to delete venue", sl.Err(err), slog.String("venue_id", id))
			errmap.Render(w, r, err, "failed to delete venue")
			return
		}

		log.Info("venue deleted", slog.String("venue_id", id))

		render.JSON(w, r, response.OK())
	}
}
