package deleteRequest

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/deleteRequest/mocks"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

func TestDeleteRequestHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	user := &models.Actor{UserID: "user-1", Role: models.RoleUser, PasswordChanged: true}

	testCases := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Not pending",
			mockErr:        fmt.Errorf("lifecycle.Delete: %w", &models.TransitionError{From: models.StatusApproved, Action: "delete"}),
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"cannot delete request in status approved"}`,
		},
		{
			name:           "Not the requester",
			mockErr:        fmt.Errorf("lifecycle.Delete: %w", models.ErrNotAuthorized),
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"not authorized"}`,
		},
		{
			name:           "Changed concurrently",
			mockErr:        fmt.Errorf("lifecycle.Delete: request req-1: %w", models.ErrConflict),
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"request was modified concurrently, reload and retry"}`,
		},
		{
			name:           "Internal error",
			mockErr:        errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete request"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deleter := mocks.NewRequestDeleter(t)
			deleter.On("Delete", mock.Anything, user, "req-1").Return(tc.mockErr)

			router := chi.NewRouter()
			router.Delete("/requests/{id}", New(logger, deleter))

			req, err := http.NewRequest(http.MethodDelete, "/requests/req-1", nil)
			require.NoError(t, err)
			req = req.WithContext(mwauth.WithActor(req.Context(), user))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
