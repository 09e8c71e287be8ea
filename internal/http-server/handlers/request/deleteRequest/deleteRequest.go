package deleteRequest

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RequestDeleter
type RequestDeleter interface {
	Delete(ctx context.Context, actor *models.Actor, id string) error
}

func New(log *slog.Logger, deleter RequestDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.request.deleteRequest.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("request id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("request id is required"))
			return
		}

		log = log.With(slog.String("request_id", id))

		err := deleter.Delete(r.Context(), mwauth.ActorFromContext(r.Context()), id)
		if err != nil {
			log.Error("failed to delete request", sl.Err(err))
			errmap.Render(w, r, err, "failed to delete request")
			return
		}

		log.Info("request deleted")

		render.JSON(w, r, response.OK())
	}
}
