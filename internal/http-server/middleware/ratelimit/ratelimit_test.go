package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/ratelimit"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/ratelimit/mocks"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		actor          *models.Actor
		expectedKey    string
		decision       ratelimit.Decision
		limiterErr     error
		expectedStatus int
		retryAfter     string
	}{
		{
			name:           "Guest within limit",
			expectedKey:    "submit:ip:192.0.2.1",
			decision:       ratelimit.Decision{Allowed: true, Remaining: 4},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "User keyed by id",
			actor:          &models.Actor{UserID: "user-1", Role: models.RoleUser},
			expectedKey:    "submit:user:user-1",
			decision:       ratelimit.Decision{Allowed: true, Remaining: 0},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Over limit",
			expectedKey:    "submit:ip:192.0.2.1",
			decision:       ratelimit.Decision{Allowed: false, RetryAfter: 1500 * time.Millisecond},
			expectedStatus: http.StatusTooManyRequests,
			retryAfter:     "2",
		},
		{
			name:           "Limiter down lets request through",
			expectedKey:    "submit:ip:192.0.2.1",
			limiterErr:     errors.New("connection refused"),
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			limiter := mocks.NewLimiter(t)
			limiter.On("Allow", mock.Anything, tc.expectedKey).Return(tc.decision, tc.limiterErr)

			router := chi.NewRouter()
			router.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if tc.actor != nil {
						r = r.WithContext(mwauth.WithActor(r.Context(), tc.actor))
					}
					next.ServeHTTP(w, r)
				})
			})
			router.Use(ratelimit.New(logger, limiter, "submit"))
			router.Post("/", ok)

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = "192.0.2.1:51234"
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusTooManyRequests {
				assert.JSONEq(t, `{"status":"Error","error":"too many requests"}`, rr.Body.String())
				assert.Equal(t, tc.retryAfter, rr.Header().Get("Retry-After"))
			}
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	router.Use(ratelimit.New(slogdiscard.NewDiscardLogger(), nil, "submit"))
	router.Post("/", ok)

	for range 3 {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	}
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	limiter := ratelimit.NewRedisLimiter(rdb, 2, time.Minute)
	key := "test:" + uuid.NewString()

	d, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)
}
