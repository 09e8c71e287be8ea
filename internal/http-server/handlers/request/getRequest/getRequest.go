package getRequest

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
	Request *models.BookingRequest `json:"request,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RequestGetter
type RequestGetter interface {
	Get(ctx context.Context, actor *models.Actor, id string) (*models.BookingRequest, error)
}

func New(log *slog.Logger, getter RequestGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.request.getRequest.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("request id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("request id is required"))
			return
		}

		log = log.With(slog.String("request_id", id))

		req, err := getter.Get(r.Context(), mwauth.ActorFromContext(r.Context()), id)
		if err != nil {
			log.Error("failed to get request", sl.Err(err))
			errmap.Render(w, r, err, "failed to get request")
			return
		}

		log.Info("request retrieved")

		responseOK(w, r, req)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, req *models.BookingRequest) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Request:  req,
	})
}
