package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogdiscard"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/outbox/mocks"
	"github.com/qwerty-development/revive-webapp/internal/storage/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func events(ids ...string) []models.RequestEvent {
	out := make([]models.RequestEvent, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.RequestEvent{ID: id, Type: models.EventSubmitted, RequestID: "req-" + id})
	}
	return out
}

func TestFlush(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	errBroker := errors.New("channel closed")

	testCases := []struct {
		name      string
		mockSetup func(src *mocks.Source, pub *mocks.Publisher)
		wantSent  int
		wantErr   error
	}{
		{
			name: "All published",
			mockSetup: func(src *mocks.Source, pub *mocks.Publisher) {
				src.On("UnpublishedEvents", mock.Anything, 10).Return(events("a", "b"), nil)
				pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()
				src.On("MarkEventsPublished", mock.Anything, []string{"a", "b"}).Return(nil)
			},
			wantSent: 2,
		},
		{
			name: "Nothing pending",
			mockSetup: func(src *mocks.Source, pub *mocks.Publisher) {
				src.On("UnpublishedEvents", mock.Anything, 10).Return([]models.RequestEvent{}, nil)
			},
		},
		{
			name: "Stops at first failure and marks what was sent",
			mockSetup: func(src *mocks.Source, pub *mocks.Publisher) {
				evs := events("a", "b", "c")
				src.On("UnpublishedEvents", mock.Anything, 10).Return(evs, nil)
				pub.On("Publish", mock.Anything, evs[0]).Return(nil).Once()
				pub.On("Publish", mock.Anything, evs[1]).Return(errBroker).Once()
				src.On("MarkEventsPublished", mock.Anything, []string{"a"}).Return(nil)
			},
			wantSent: 1,
			wantErr:  errBroker,
		},
		{
			name: "First publish fails",
			mockSetup: func(src *mocks.Source, pub *mocks.Publisher) {
				evs := events("a")
				src.On("UnpublishedEvents", mock.Anything, 10).Return(evs, nil)
				pub.On("Publish", mock.Anything, evs[0]).Return(errBroker).Once()
			},
			wantErr: errBroker,
		},
		{
			name: "Source failure",
			mockSetup: func(src *mocks.Source, pub *mocks.Publisher) {
				src.On("UnpublishedEvents", mock.Anything, 10).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := mocks.NewSource(t)
			pub := mocks.NewPublisher(t)
			tc.mockSetup(src, pub)

			relay := New(logger, src, pub, time.Second, 10)

			sent, err := relay.Flush(context.Background())
			assert.Equal(t, tc.wantSent, sent)
			if tc.wantErr != nil {
				assert.EqualError(t, err, tc.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type recorder struct {
	mu    sync.Mutex
	types []string
}

func (r *recorder) Publish(_ context.Context, ev models.RequestEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, ev.Type)
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

func TestRunRelaysFromStorageAndStops(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateVenue(ctx, &models.Venue{ID: "venue-1", OwnerID: "store-1", Name: "Hall", Status: models.VenueActive}))

	req := models.BookingRequest{ID: "req-1", VenueID: "venue-1", PartySize: 2, Status: models.StatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.CreateRequest(ctx, &req))

	approved := req
	approved.Status = models.StatusApproved
	require.NoError(t, store.SaveRequest(ctx, &approved, models.StatusPending))

	rec := &recorder{}
	relay := New(slogdiscard.NewDiscardLogger(), store, rec, 5*time.Millisecond, 100)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		relay.Run(runCtx)
	}()

	assert.Eventually(t, func() bool {
		return len(rec.seen()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, []string{"request.submitted", "request.approved"}, rec.seen())

	left, err := store.UnpublishedEvents(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestNewDefaultsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	for _, interval := range []time.Duration{0, -time.Second} {
		relay := New(logger, memory.New(), &recorder{}, interval, 10)
		assert.Equal(t, DefaultInterval, relay.interval)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NotPanics(t, func() { relay.Run(ctx) })
	}

	assert.Equal(t, time.Minute, New(logger, memory.New(), &recorder{}, time.Minute, 10).interval)
}
