package changeStatus

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
	"github.com/qwerty-development/revive-webapp/internal/lifecycle"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Response struct {
	response.Response
	Request *models.BookingRequest `json:"request,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusChanger
type StatusChanger interface {
	Transition(ctx context.Context, actor *models.Actor, id string, action lifecycle.Action) (*models.BookingRequest, error)
}

// New serves one status-changing action: approve, reject, complete or cancel.
func New(log *slog.Logger, changer StatusChanger, action lifecycle.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.request.changeStatus.New"

		log := log.With(
			slog.String("op", op),
			slog.String("action", string(action)),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("request id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("request id is required"))
			return
		}

		log = log.With(slog.String("request_id", id))

		req, err := changer.Transition(r.Context(), mwauth.ActorFromContext(r.Context()), id, action)
		if err != nil {
			log.Error("failed to change request status", sl.Err(err))
			errmap.Render(w, r, err, "failed to "+string(action)+" request")
			return
		}

		log.Info("request status changed", slog.String("status", string(req.Status)))

		responseOK(w, r, req)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, req *models.BookingRequest) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Request:  req,
	})
}
