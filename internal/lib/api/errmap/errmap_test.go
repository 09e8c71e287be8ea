package errmap

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage"
)

func TestResponse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expected       response.Response
	}{
		{
			name:           "Validation",
			err:            fmt.Errorf("lifecycle.Submit: %w", models.NewValidationError("party_size", "must be at least 1")),
			expectedStatus: http.StatusBadRequest,
			expected: response.Response{
				Status: response.StatusError,
				Error:  "field party_size must be at least 1",
				Fields: map[string]string{"party_size": "must be at least 1"},
			},
		},
		{
			name:           "Not authorized",
			err:            fmt.Errorf("lifecycle.Approve: %w", models.ErrNotAuthorized),
			expectedStatus: http.StatusForbidden,
			expected:       response.Error("not authorized"),
		},
		{
			name:           "Not found",
			err:            fmt.Errorf("request abc: %w", models.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expected:       response.Error("not found"),
		},
		{
			name:           "Invalid transition",
			err:            fmt.Errorf("lifecycle.Approve: %w", &models.TransitionError{From: models.StatusRejected, Action: "approve"}),
			expectedStatus: http.StatusConflict,
			expected:       response.Error("cannot approve request in status rejected"),
		},
		{
			name:           "Concurrent change",
			err:            fmt.Errorf("request abc: %w: %w", models.ErrConflict, storage.ErrConflict),
			expectedStatus: http.StatusConflict,
			expected:       response.Error("request was modified concurrently, reload and retry"),
		},
		{
			name:           "Venue in use",
			err:            fmt.Errorf("venue abc: %w: %w", models.ErrConflict, storage.ErrVenueHasOpenRequests),
			expectedStatus: http.StatusConflict,
			expected:       response.Error("venue has pending or approved requests"),
		},
		{
			name:           "Unclassified",
			err:            errors.New("pq: connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expected:       response.Error("failed to do it"),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := Response(tc.err, "failed to do it")

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expected, resp)
		})
	}
}
