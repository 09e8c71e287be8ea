// Package mwauth resolves the bearer token of a request into an actor and guards routes by role.
package mwauth

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/render"

	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenParser
type TokenParser interface {
	Parse(raw string) (*models.Actor, error)
}

type ctxKey struct{}

func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromContext returns the caller, or nil for a guest.
func ActorFromContext(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(ctxKey{}).(*models.Actor)
	return actor
}

// Authenticate requires a valid bearer token.
func Authenticate(log *slog.Logger, parser TokenParser) func(next http.Handler) http.Handler {
	return resolve(log, parser, true)
}

// Optional attaches the actor when a bearer token is sent and lets guests through.
// A token that is sent but invalid is still refused.
func Optional(log *slog.Logger, parser TokenParser) func(next http.Handler) http.Handler {
	return resolve(log, parser, false)
}

func resolve(log *slog.Logger, parser TokenParser, required bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/auth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					unauthorized(w, r, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				unauthorized(w, r, "missing bearer token")
				return
			}

			actor, err := parser.Parse(strings.TrimSpace(raw))
			if err != nil {
				log.Warn("rejected token", sl.Err(err))
				unauthorized(w, r, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireRole refuses actors whose role is not listed.
func RequireRole(roles ...models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if actor == nil {
				unauthorized(w, r, "missing bearer token")
				return
			}
			if !slices.Contains(roles, actor.Role) {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("not authorized"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

// RequirePasswordChanged keeps store accounts on their initial password away from protected routes.
func RequirePasswordChanged(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if actor.Is(models.RoleStore) && !actor.PasswordChanged {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("password change required"))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(msg))
}
