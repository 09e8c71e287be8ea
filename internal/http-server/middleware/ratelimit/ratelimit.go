// Package ratelimit caps how often one client may hit a route within a fixed window.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
)

// Decision is the outcome of one hit against a window.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Limiter
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// fixedWindow counts hits in KEYS[1]; the first hit of a window starts its expiry.
var fixedWindow = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { count, ttl }
`)

type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	const op = "ratelimit.Allow"

	vals, err := fixedWindow.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(vals) != 2 {
		return Decision{}, fmt.Errorf("%s: unexpected script result %v", op, vals)
	}

	count, ttl := vals[0], vals[1]
	if ttl < 0 {
		ttl = l.window.Milliseconds()
	}

	d := Decision{
		Allowed:   count <= int64(l.limit),
		Remaining: max(l.limit-int(count), 0),
	}
	if !d.Allowed {
		d.RetryAfter = time.Duration(ttl) * time.Millisecond
	}

	return d, nil
}

// New limits requests per actor, or per client IP for guests. A nil limiter disables limiting,
// and limiter failures let the request through.
func New(log *slog.Logger, limiter Limiter, route string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		log := log.With(slog.String("component", "middleware/ratelimit"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			key := route + ":" + clientKey(r)

			d, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter unavailable", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(secs))

				log.Info("rate limit exceeded", slog.String("key", key))

				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func clientKey(r *http.Request) string {
	if actor := mwauth.ActorFromContext(r.Context()); actor != nil {
		return "user:" + actor.UserID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		host = "unknown"
	}
	return "ip:" + host
}
