package submitRequest

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

type Request struct {
	FirstName   string    `json:"first_name" validate:"required"`
	LastName    string    `json:"last_name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	PhoneNumber string    `json:"phone_number" validate:"required"`
	PartySize   int       `json:"party_size" validate:"required,gte=1"`
	ArrivalTime time.Time `json:"arrival_time" validate:"required"`
	PriceOffer  float64   `json:"price_offer" validate:"gte=0"`
	Notes       string    `json:"notes" validate:"max=2000"`
}

type Response struct {
	response.Response
	Request *models.BookingRequest `json:"request,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RequestSubmitter
type RequestSubmitter interface {
	Submit(ctx context.Context, actor *models.Actor, d models.Draft) (*models.BookingRequest, error)
}

func New(log *slog.Logger, submitter RequestSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.request.submitRequest.New"

		log := log.With(slog.String("op", op))

		venueID := chi.URLParam(r, "id")
		if venueID == "" {
			log.Error("venue id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("venue id is required"))
			return
		}

		log = log.With(slog.String("venue_id", venueID))

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

		created, err := submitter.Submit(r.Context(), mwauth.ActorFromContext(r.Context()), models.Draft{
			VenueID: venueID,
			Contact: models.Contact{
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				Email:       req.Email,
				PhoneNumber: req.PhoneNumber,
			},
			PartySize:   req.PartySize,
			ArrivalTime: req.ArrivalTime,
			PriceOffer:  req.PriceOffer,
			Notes:       req.Notes,
		})
		if err != nil {
			log.Error("failed to submit request", sl.Err(err))
			errmap.Render(w, r, err, "failed to submit request")
			return
		}

		log.Info("request submitted", slog.String("request_id", created.ID))

		render.Status(r, http.StatusCreated)
		responseOK(w, r, created)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, req *models.BookingRequest) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Request:  req,
	})
}
