// Package outbox relays recorded lifecycle events to the message broker.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Source
type Source interface {
	UnpublishedEvents(ctx context.Context, limit int) ([]models.RequestEvent, error)
	MarkEventsPublished(ctx context.Context, ids []string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Publisher
type Publisher interface {
	Publish(ctx context.Context, ev models.RequestEvent) error
}

type Relay struct {
	log      *slog.Logger
	source   Source
	pub      Publisher
	interval time.Duration
	batch    int
}

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 5 * time.Second

func New(log *slog.Logger, source Source, pub Publisher, interval time.Duration, batch int) *Relay {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Relay{
		log:      log.With(slog.String("component", "outbox")),
		source:   source,
		pub:      pub,
		interval: interval,
		batch:    batch,
	}
}

// Run flushes on every tick until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil {
				r.log.Error("failed to relay events", sl.Err(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Flush publishes one batch in order. It stops at the first publish failure so events
// of a request are never delivered out of order; what was sent is still marked.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	const op = "outbox.Flush"

	log := r.log.With(slog.String("op", op))

	events, err := r.source.UnpublishedEvents(ctx, r.batch)
	if err != nil {
		return 0, err
	}

	sent := make([]string, 0, len(events))
	var pubErr error
	for _, ev := range events {
		if pubErr = r.pub.Publish(ctx, ev); pubErr != nil {
			log.Warn("failed to publish event",
				slog.String("event_id", ev.ID),
				slog.String("type", ev.Type),
				sl.Err(pubErr),
			)
			break
		}
		sent = append(sent, ev.ID)
	}

	if len(sent) > 0 {
		if err := r.source.MarkEventsPublished(ctx, sent); err != nil {
			return 0, err
		}
		log.Debug("events relayed", slog.Int("count", len(sent)))
	}

	return len(sent), pubErr
}

// LogPublisher stands in for the broker when it is disabled.
type LogPublisher struct {
	Log *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, ev models.RequestEvent) error {
	p.Log.Info("request event",
		slog.String("type", ev.Type),
		slog.String("request_id", ev.RequestID),
		slog.String("venue_id", ev.VenueID),
		slog.String("status", string(ev.Status)),
	)
	return nil
}
