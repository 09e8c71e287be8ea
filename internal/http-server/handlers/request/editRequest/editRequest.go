package editRequest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/errmap"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

// Request holds the editable fields; omitted fields keep their current value.
type Request struct {
	PartySize   *int       `json:"party_size" validate:"omitempty,gte=1"`
	ArrivalTime *time.Time `json:"arrival_time"`
	PriceOffer  *float64   `json:"price_offer" validate:"omitempty,gte=0"`
	Notes       *string    `json:"notes" validate:"omitempty,max=2000"`
}

type Response struct {
	response.Response
	Request *models.BookingRequest `json:"request,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RequestEditor
type RequestEditor interface {
	Edit(ctx context.Context, actor *models.Actor, id string, p models.Patch) (*models.BookingRequest, error)
}

func New(log *slog.Logger, editor RequestEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.request.editRequest.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("request id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("request id is required"))
			return
		}

		log = log.With(slog.String("request_id", id))

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

		updated, err := editor.Edit(r.Context(), mwauth.ActorFromContext(r.Context()), id, models.Patch{
			PartySize:   req.PartySize,
			ArrivalTime: req.ArrivalTime,
			PriceOffer:  req.PriceOffer,
			Notes:       req.Notes,
		})
		if err != nil {
			log.Error("failed to edit request", sl.Err(err))
			errmap.Render(w, r, err, "failed to edit request")
			return
		}

		log.Info("request edited")

		responseOK(w, r, updated)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, req *models.BookingRequest) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Request:  req,
	})
}
