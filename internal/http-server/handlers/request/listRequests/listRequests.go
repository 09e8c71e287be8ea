package listRequests

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/render"

	"github.com/qwerty-development/revive-webapp/internal/http-server/middleware/mwauth"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/errmap"
	"github.com/qwerty-development/revive-webapp/internal/lib/api/response"
	"github.com/qwerty-development/revive-webapp/internal/lib/logger/sl"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Response struct {
	response.Response
	Count    int                     `json:"count"`
	Requests []models.BookingRequest `json:"requests"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RequestLister
type RequestLister interface {
	List(ctx context.Context, actor *models.Actor, q models.ListQuery) ([]models.BookingRequest, error)
}

// New lists the requests visible to the caller. Query parameters: status (repeatable or
// comma separated), venue_id, range, search and sort.
func New(log *slog.Logger, lister RequestLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.request.listRequests.New"

		log := log.With(slog.String("op", op))

		q, err := parseQuery(r.URL.Query())
		if err != nil {
			log.Error("invalid query", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		reqs, err := lister.List(r.Context(), mwauth.ActorFromContext(r.Context()), q)
		if err != nil {
			log.Error("failed to list requests", sl.Err(err))
			errmap.Render(w, r, err, "failed to list requests")
			return
		}

		log.Info("requests retrieved successfully", slog.Int("count", len(reqs)))

		responseOK(w, r, reqs)
	}
}

func parseQuery(v url.Values) (models.ListQuery, error) {
	var q models.ListQuery

	for _, raw := range v["status"] {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			st := models.Status(s)
			if !st.Valid() {
				return q, fmt.Errorf("unknown status %q", s)
			}
			q.Statuses = append(q.Statuses, st)
		}
	}

	rng, err := models.ParseTimeRange(v.Get("range"))
	if err != nil {
		return q, err
	}
	sort, err := models.ParseSortOrder(v.Get("sort"))
	if err != nil {
		return q, err
	}

	q.VenueID = v.Get("venue_id")
	q.Range = rng
	q.Sort = sort
	q.Search = v.Get("search")

	return q, nil
}

func responseOK(w http.ResponseWriter, r *http.Request, reqs []models.BookingRequest) {
	if reqs == nil {
		reqs = []models.BookingRequest{}
	}
	render.JSON(w, r, Response{
		Response: response.OK(),
		Count:    len(reqs),
		Requests: reqs,
	})
}
