package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/qwerty-development/revive-webapp/internal/auth"
	"github.com/qwerty-development/revive-webapp/internal/broker/rabbitmq"
	"github.com/qwerty-development/revive-webapp/internal/config"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/changeStatus"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/deleteRequest"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/editRequest"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/getRequest"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/listRequests"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/request/submitRequest"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/stats/getStats"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/createVenue"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/deleteVenue"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/getVenue"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/listVenues"
	"github.com/qwerty-development/revive-webapp/internal/http-server/handlers/venue/setVenueStatus"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwlogger"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/ratelimit"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/handlers/slogpretty"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/lifecycle"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/outbox"
	"github.com/qwerty-development/revive-webapp/internal/storage/memory"
	"github.com/qwerty-development/revive-webapp/internal/storage/postgres"
	"github.com/qwerty-development/revive-webapp/internal/venue"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

// store is what the service needs from persistence; memory and postgres both satisfy it.
type store interface {
	lifecycle.Repository
	venue.Store
	outbox.Source
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting venue booker", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage))
	log.Debug("debug messages are enabled")

	st, err := setupStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	pub, closePub, err := setupPublisher(cfg, log)
	if err != nil {
		log.Error("failed to connect to broker", sl.Err(err))
		os.Exit(1)
	}

	limiter, rdb := setupLimiter(cfg)

	engine := lifecycle.New(st, st, lifecycle.OwnershipAuthorizer{})
	venues := venue.New(st)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	router := newRouter(log, engine, venues, tokens, limiter)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())

	relay := outbox.New(log, st, pub, cfg.Outbox.Interval, cfg.Outbox.BatchSize)
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		relay.Run(ctx)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	cancel()
	<-relayDone

	// Publish what the last requests recorded before the broker goes away.
	if _, err = relay.Flush(shutdownCtx); err != nil {
		log.Error("failed to flush outbox", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closePub(); err != nil {
		log.Error("failed to close broker connection", sl.Err(err))
	}
	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}
	if err = st.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func newRouter(
	log *slog.Logger,
	engine *lifecycle.Engine,
	venues *venue.Service,
	tokens mwauth.TokenParser,
	limiter ratelimit.Limiter,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// Guests and signed-in callers.
	router.Group(func(r chi.Router) {
		r.Use(mwauth.Optional(log, tokens))
		r.Use(mwauth.RequirePasswordChanged)

		r.Get("/venues", listVenues.New(log, venues))
		r.Get("/venues/{id}", getVenue.New(log, venues))
		r.With(ratelimit.New(log, limiter, "submit")).
			Post("/venues/{id}/requests", submitRequest.New(log, engine))
	})

	router.Group(func(r chi.Router) {
		r.Use(mwauth.Authenticate(log, tokens))
		r.Use(mwauth.RequirePasswordChanged)

		r.Get("/requests", listRequests.New(log, engine))
		r.Get("/requests/{id}", getRequest.New(log, engine))
		r.Get("/stats", getStats.New(log, engine))

		r.With(mwauth.RequireRole(models.RoleUser)).Patch("/requests/{id}", editRequest.New(log, engine))
		r.With(mwauth.RequireRole(models.RoleUser, models.RoleStore)).Delete("/requests/{id}", deleteRequest.New(log, engine))

		r.With(mwauth.RequireRole(models.RoleStore)).Group(func(r chi.Router) {
			r.Post("/requests/{id}/approve", changeStatus.New(log, engine, lifecycle.ActionApprove))
			r.Post("/requests/{id}/reject", changeStatus.New(log, engine, lifecycle.ActionReject))
			r.Post("/requests/{id}/complete", changeStatus.New(log, engine, lifecycle.ActionComplete))
		})
		r.With(mwauth.RequireRole(models.RoleUser)).Post("/requests/{id}/cancel", changeStatus.New(log, engine, lifecycle.ActionCancel))

		r.With(mwauth.RequireRole(models.RoleAdmin)).Group(func(r chi.Router) {
			r.Post("/venues", createVenue.New(log, venues))
			r.Patch("/venues/{id}/status", setVenueStatus.New(log, venues))
			r.Delete("/venues/{id}", deleteVenue.New(log, venues))
		})
	})

	return router
}

func setupStorage(cfg *config.Config) (store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StoragePostgres:
		db, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, err
		}

		if cfg.Database.MigrateOnStart {
			if err = db.Migrate(context.Background()); err != nil {
				_ = db.Close()
				return nil, err
			}
		}

		return db, nil
	}

	return nil, errors.New("unknown storage: " + cfg.Storage)
}

func setupPublisher(cfg *config.Config, log *slog.Logger) (outbox.Publisher, func() error, error) {
	if !cfg.Broker.Enabled {
		return outbox.LogPublisher{Log: log}, func() error { return nil }, nil
	}

	pub, err := rabbitmq.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
	if err != nil {
		return nil, nil, err
	}

	return pub, pub.Close, nil
}

// setupLimiter returns a nil Limiter when rate limiting is off.
func setupLimiter(cfg *config.Config) (ratelimit.Limiter, *redis.Client) {
	if !cfg.RateLimit.Enabled || !cfg.Redis.Enabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window), rdb
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
