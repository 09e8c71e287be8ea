package createVenue

import (
	"bytes"
	"encoding/json"
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

	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/createVenue/mocks"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/venue"
)

func TestCreateVenueHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	admin := &models.Actor{UserID: "admin-1", Role: models.RoleAdmin, PasswordChanged: true}
	capacity := 120
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		body           string
		mockSetup      func(m *mocks.VenueCreator)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: `{"owner_id":"store-1","name":"Roof Bar","location":"Beirut","capacity":120,"amenities":["wifi"]}`,
			mockSetup: func(m *mocks.VenueCreator) {
				m.On("Create", mock.Anything, admin, venue.NewVenue{
					OwnerID:   "store-1",
					Name:      "Roof Bar",
					Location:  "Beirut",
					Capacity:  &capacity,
					Amenities: []string{"wifi"},
				}).Return(&models.Venue{
					ID:        "venue-1",
					OwnerID:   "store-1",
					Name:      "Roof Bar",
					Location:  "Beirut",
					Capacity:  &capacity,
					Amenities: []string{"wifi"},
					Status:    models.VenueActive,
					CreatedAt: created,
					UpdatedAt: created,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Invalid JSON",
			body:           `{"name":`,
			mockSetup:      func(m *mocks.VenueCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing name",
			body:           `{"owner_id":"store-1"}`,
			mockSetup:      func(m *mocks.VenueCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Name is a required field"}`,
		},
		{
			name:           "Bad status",
			body:           `{"owner_id":"store-1","name":"Roof Bar","status":"archived"}`,
			mockSetup:      func(m *mocks.VenueCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of: active hidden"}`,
		},
		{
			name: "Not an admin",
			body: `{"owner_id":"store-1","name":"Roof Bar"}`,
			mockSetup: func(m *mocks.VenueCreator) {
				m.On("Create", mock.Anything, admin, mock.Anything).Return(nil, fmt.Errorf("venue.Create: %w", models.ErrNotAuthorized))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"not authorized"}`,
		},
		{
			name: "Internal error",
			body: `{"owner_id":"store-1","name":"Roof Bar"}`,
			mockSetup: func(m *mocks.VenueCreator) {
				m.On("Create", mock.Anything, admin, mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to create venue"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			creator := mocks.NewVenueCreator(t)
			tc.mockSetup(creator)

			router := chi.NewRouter()
			router.Post("/venues", New(logger, creator))

			req, err := http.NewRequest(http.MethodPost, "/venues", bytes.NewBufferString(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(mwauth.WithActor(req.Context(), admin))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				return
			}

			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "OK", resp.Status)
			require.NotNil(t, resp.Venue)
			assert.Equal(t, "venue-1", resp.Venue.ID)
			assert.Equal(t, models.VenueActive, resp.Venue.Status)
		})
	}
}
