// Package rabbitmq publishes booking request lifecycle events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// session is one broker connection and the channel opened on it.
type session struct {
	conn io.Closer
	ch   channel
}

func (s *session) close() error {
	_ = s.ch.Close()
	return s.conn.Close()
}

type dialFunc func(url, exchange string) (*session, error)

// Publisher keeps one session and replaces it once the broker closes it.
type Publisher struct {
	url      string
	exchange string
	dial     dialFunc

	mu   sync.Mutex
	sess *session
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	return newPublisher(url, exchange, dial)
}

func newPublisher(url, exchange string, dial dialFunc) (*Publisher, error) {
	sess, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}
	return &Publisher{url: url, exchange: exchange, dial: dial, sess: sess}, nil
}

func dial(url, exchange string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &session{conn: conn, ch: ch}, nil
}

// Publish sends ev with its type as the routing key, e.g. "request.approved".
// A closed channel is re-dialed once before giving up.
func (p *Publisher) Publish(ctx context.Context, ev models.RequestEvent) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for attempt := 0; ; attempt++ {
		ch, err := p.channel()
		if err != nil {
			return fmt.Errorf("publish %s: %w", ev.Type, err)
		}

		err = ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, msg)
		if err == nil {
			return nil
		}
		if !errors.Is(err, amqp.ErrClosed) || attempt > 0 {
			return fmt.Errorf("publish %s: %w", ev.Type, err)
		}
		p.reset()
	}
}

// channel returns the live channel, dialing a new session when there is none.
func (p *Publisher) channel() (channel, error) {
	if p.sess != nil && p.sess.ch.IsClosed() {
		p.reset()
	}
	if p.sess == nil {
		sess, err := p.dial(p.url, p.exchange)
		if err != nil {
			return nil, err
		}
		p.sess = sess
	}
	return p.sess.ch, nil
}

func (p *Publisher) reset() {
	if p.sess != nil {
		_ = p.sess.close()
		p.sess = nil
	}
}

// Message builds the persistent AMQP message carrying ev.
func Message(ev models.RequestEvent) (amqp.Publishing, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode event %s: %w", ev.ID, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         b,
	}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil {
		return nil
	}
	err := p.sess.close()
	p.sess = nil
	return err
}
