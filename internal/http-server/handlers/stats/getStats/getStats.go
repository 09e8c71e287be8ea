package getStats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/qwerty-development/revive-webapp/internal/analytics"
	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/errmap"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/lifecycle"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Response struct {
	response.Response
	analytics.Report
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatsGetter
type StatsGetter interface {
	Stats(ctx context.Context, actor *models.Actor, q lifecycle.StatsQuery) (analytics.Report, error)
}

func New(log *slog.Logger, getter StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stats.getStats.New"

		log := log.With(slog.String("op", op))

		rng, err := models.ParseTimeRange(r.URL.Query().Get("range"))
		if err != nil {
			log.Error("invalid range", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		report, err := getter.Stats(r.Context(), mwauth.ActorFromContext(r.Context()), lifecycle.StatsQuery{
			VenueID: r.URL.Query().Get("venue_id"),
			Range:   rng,
		})
		if err != nil {
			log.Error("failed to compute stats", sl.Err(err))
			errmap.Render(w, r, err, "failed to compute stats")
			return
		}

		log.Info("stats computed", slog.Int("total_requests", report.Summary.TotalRequests))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Report:   report,
		})
	}
}
