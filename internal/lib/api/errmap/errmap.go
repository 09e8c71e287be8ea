// Package errmap turns domain errors into HTTP statuses and response bodies.
package errmap

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage"
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Response returns the status and body for err. Unclassified errors are reported
// with fallback so internal details are not leaked.
func Response(err error, fallback string) (int, response.Response) {
	status := Status(err)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return status, response.FieldErrors(verr.Error(), verr.Fields)
	case status == http.StatusBadRequest:
		return status, response.Error("invalid input")
	case status == http.StatusForbidden:
		return status, response.Error("not authorized")
	case status == http.StatusNotFound:
		return status, response.Error("not found")
	}

	var terr *models.TransitionError
	if errors.As(err, &terr) {
		return status, response.Error(terr.Error())
	}
	if errors.Is(err, storage.ErrVenueHasOpenRequests) {
		return status, response.Error("venue has pending or approved requests")
	}
	if status == http.StatusConflict {
		return status, response.Error("request was modified concurrently, reload and retry")
	}

	return status, response.Error(fallback)
}

// Render writes the response for err.
func Render(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, resp := Response(err, fallback)
	render.Status(r, status)
	render.JSON(w, r, resp)
}
