package listVenues

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/listVenues/mocks"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

func TestListVenuesHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := &models.Actor{UserID: "store-1", Role: models.RoleStore, PasswordChanged: true}

	testCases := []struct {
		name           string
		actor          *models.Actor
		result         []models.Venue
		mockErr        error
		expectedStatus int
		expectedIDs    []string
		expectedBody   string
	}{
		{
			name:  "Guest",
			actor: nil,
			result: []models.Venue{
				{ID: "venue-1", Name: "Garden", Status: models.VenueActive},
				{ID: "venue-2", Name: "Roof Bar", Status: models.VenueActive},
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"venue-1", "venue-2"},
		},
		{
			name:  "Store sees its hidden venue",
			actor: store,
			result: []models.Venue{
				{ID: "venue-3", Name: "Cellar", OwnerID: "store-1", Status: models.VenueHidden},
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"venue-3"},
		},
		{
			name:           "Empty catalog",
			actor:          nil,
			result:         nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","venues":[]}`,
		},
		{
			name:           "Internal error",
			actor:          store,
			mockErr:        errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to list venues"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewVenueLister(t)
			lister.On("List", mock.Anything, tc.actor).Return(tc.result, tc.mockErr)

			router := chi.NewRouter()
			router.Get("/venues", New(logger, lister))

			req, err := http.NewRequest(http.MethodGet, "/venues", nil)
			require.NoError(t, err)
			if tc.actor != nil {
				req = req.WithContext(mwauth.WithActor(req.Context(), tc.actor))
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				return
			}

			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			ids := make([]string, 0, len(resp.Venues))
			for _, v := range resp.Venues {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}
