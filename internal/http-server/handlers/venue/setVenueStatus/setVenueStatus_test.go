package setVenueStatus

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/setVenueStatus/mocks"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

func TestSetVenueStatusHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	admin := &models.Actor{UserID: "admin-1", Role: models.RoleAdmin, PasswordChanged: true}

	testCases := []struct {
		name           string
		body           string
		mockSetup      func(m *mocks.VenueStatusSetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Hide",
			body: `{"status":"hidden"}`,
			mockSetup: func(m *mocks.VenueStatusSetter) {
				m.On("SetStatus", mock.Anything, admin, "venue-1", models.VenueHidden).
					Return(&models.Venue{ID: "venue-1", Name: "Roof Bar", Status: models.VenueHidden}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing status",
			body:           `{}`,
			mockSetup:      func(m *mocks.VenueStatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status is a required field"}`,
		},
		{
			name:           "Unknown status",
			body:           `{"status":"deleted"}`,
			mockSetup:      func(m *mocks.VenueStatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of: active hidden"}`,
		},
		{
			name:           "Invalid JSON",
			body:           `status=hidden`,
			mockSetup:      func(m *mocks.VenueStatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name: "Unknown venue",
			body: `{"status":"active"}`,
			mockSetup: func(m *mocks.VenueStatusSetter) {
				m.On("SetStatus", mock.Anything, admin, "venue-1", models.VenueActive).
					Return(nil, fmt.Errorf("venue.SetStatus: venue venue-1: %w", models.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"not found"}`,
		},
		{
			name: "Internal error",
			body: `{"status":"active"}`,
			mockSetup: func(m *mocks.VenueStatusSetter) {
				m.On("SetStatus", mock.Anything, admin, "venue-1", models.VenueActive).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to set venue status"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			setter := mocks.NewVenueStatusSetter(t)
			tc.mockSetup(setter)

			router := chi.NewRouter()
			router.Patch("/venues/{id}/status", New(logger, setter))

			req, err := http.NewRequest(http.MethodPatch, "/venues/venue-1/status", bytes.NewBufferString(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(mwauth.WithActor(req.Context(), admin))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), `"status":"hidden"`)
			}
		})
	}
}
