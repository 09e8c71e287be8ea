package listVenues

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/errmap"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Response struct {
	response.Response
	Venues []models.Venue `json:"venues"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=VenueLister
type VenueLister interface {
	List(ctx context.Context, actor *models.Actor) ([]models.Venue, error)
}

func New(log *slog.Logger, lister VenueLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.listVenues.New"

		log := log.With(slog.String("op", op))

		venues, err := lister.List(r.Context(), mwauth.ActorFromContext(r.Context()))
		if err != nil {
			log.Error("failed to list venues", sl.Err(err))
			errmap.Render(w, r, err, "failed to list venues")
			return
		}

		log.Info("venues retrieved successfully", slog.Int("count", len(venues)))

		if venues == nil {
			venues = []models.Venue{}
		}
		render.JSON(w, r, Response{
			Response: response.OK(),
			Venues:   venues,
		})
	}
}
