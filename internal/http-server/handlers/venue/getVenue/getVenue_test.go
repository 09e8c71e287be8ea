package getVenue

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/getVenue/mocks"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

func TestGetVenueHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		result         *models.Venue
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success for a guest",
			result: &models.Venue{
				ID:        "venue-1",
				OwnerID:   "store-1",
				Name:      "Roof Bar",
				Amenities: []string{},
				Status:    models.VenueActive,
				CreatedAt: at,
				UpdatedAt: at,
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","venue":{"id":"venue-1","owner_id":"store-1","name":"Roof Bar","location":"","type":"",
				"description":"","capacity":null,"average_price":null,"amenities":[],"status":"active",
				"created_at":"2026-10-01T12:00:00Z","updated_at":"2026-10-01T12:00:00Z"}}`,
		},
		{
			name:           "Hidden or missing",
			mockErr:        fmt.Errorf("venue.Get: venue venue-1: %w", models.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"not found"}`,
		},
		{
			name:           "Internal error",
			mockErr:        errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get venue"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewVenueGetter(t)
			getter.On("Get", mock.Anything, (*models.Actor)(nil), "venue-1").Return(tc.result, tc.mockErr)

			router := chi.NewRouter()
			router.Get("/venues/{id}", New(logger, getter))

			req, err := http.NewRequest(http.MethodGet, "/venues/venue-1", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
