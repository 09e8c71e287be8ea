// Package analytics derives dashboard statistics from a set of booking requests.
// Nothing here is stored: every figure is recomputed from the requests passed in.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Summary struct {
	TotalRequests     int     `json:"total_requests"`
	CompletedRequests int     `json:"completed_requests"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOffer      float64 `json:"average_offer"`
	ConversionRate    float64 `json:"conversion_rate"`
	AverageOccupancy  float64 `json:"average_occupancy"`
}

type Bucket struct {
	Start    time.Time `json:"start"`
	Label    string    `json:"label"`
	Requests int       `json:"requests"`
	Revenue  float64   `json:"revenue"`
}

type Report struct {
	Range        models.TimeRange      `json:"range"`
	Summary      Summary               `json:"summary"`
	StatusCounts map[models.Status]int `json:"status_counts"`
	Trend        []Bucket              `json:"trend"`
}

type Options struct {
	Now   time.Time
	Range models.TimeRange
	// Capacity of the single venue in scope; nil leaves AverageOccupancy at 0.
	Capacity *int
	// Shards > 1 totals the requests concurrently.
	Shards int
}

// totals holds the additive parts of a Summary so that shards can be merged.
type totals struct {
	count        int
	completed    int
	offerSum     float64
	revenue      float64
	completedPax int
	byStatus     map[models.Status]int
}

func newTotals() totals {
	t := totals{byStatus: make(map[models.Status]int, len(models.Statuses))}
	for _, s := range models.Statuses {
		t.byStatus[s] = 0
	}
	return t
}

func (t *totals) add(r models.BookingRequest) {
	t.count++
	t.offerSum += r.PriceOffer
	t.byStatus[r.Status]++

	if r.Status == models.StatusCompleted {
		t.completed++
		t.revenue += r.PriceOffer
		t.completedPax += r.PartySize
	}
}

func (t *totals) merge(o totals) {
	t.count += o.count
	t.completed += o.completed
	t.offerSum += o.offerSum
	t.revenue += o.revenue
	t.completedPax += o.completedPax
	for s, n := range o.byStatus {
		t.byStatus[s] += n
	}
}

func (t totals) summary(capacity *int) Summary {
	s := Summary{
		TotalRequests:     t.count,
		CompletedRequests: t.completed,
		TotalRevenue:      t.revenue,
	}

	if t.count > 0 {
		s.AverageOffer = t.offerSum / float64(t.count)
		s.ConversionRate = float64(t.completed) / float64(t.count) * 100
	}

	if t.completed > 0 && capacity != nil && *capacity > 0 {
		s.AverageOccupancy = float64(t.completedPax) / float64(t.completed) / float64(*capacity) * 100
	}

	return s
}

// Summarize computes the summary statistics of reqs.
func Summarize(reqs []models.BookingRequest, capacity *int) Summary {
	t := newTotals()
	for _, r := range reqs {
		t.add(r)
	}
	return t.summary(capacity)
}

// Window keeps the requests created at or after since. A zero since keeps everything.
func Window(reqs []models.BookingRequest, since time.Time) []models.BookingRequest {
	if since.IsZero() {
		return reqs
	}

	out := make([]models.BookingRequest, 0, len(reqs))
	for _, r := range reqs {
		if !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out
}

// Build filters reqs to the window of opts.Range and derives the full report.
func Build(ctx context.Context, reqs []models.BookingRequest, opts Options) (Report, error) {
	rng := opts.Range
	if rng == "" {
		rng = models.RangeAll
	}

	scoped := Window(reqs, rng.Since(opts.Now))

	t, err := sumShards(ctx, scoped, opts.Shards)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Range:        rng,
		Summary:      t.summary(opts.Capacity),
		StatusCounts: t.byStatus,
		Trend:        Trend(scoped, granularity(rng)),
	}, nil
}

type Granularity int

const (
	Daily Granularity = iota
	Monthly
)

func granularity(r models.TimeRange) Granularity {
	switch r {
	case models.RangeToday, models.RangeWeek, models.RangeMonth:
		return Daily
	}
	return Monthly
}

// Trend groups reqs by creation day or month, oldest bucket first.
// Revenue only counts completed requests.
func Trend(reqs []models.BookingRequest, g Granularity) []Bucket {
	idx := make(map[time.Time]int)
	buckets := make([]Bucket, 0)

	for _, r := range reqs {
		start, label := bucketOf(r.CreatedAt.UTC(), g)

		i, ok := idx[start]
		if !ok {
			i = len(buckets)
			idx[start] = i
			buckets = append(buckets, Bucket{Start: start, Label: label})
		}

		buckets[i].Requests++
		if r.Status == models.StatusCompleted {
			buckets[i].Revenue += r.PriceOffer
		}
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return buckets
}

func bucketOf(t time.Time, g Granularity) (time.Time, string) {
	y, m, d := t.Date()
	if g == Monthly {
		start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return start, start.Format("2006-01")
	}
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.Format("2006-01-02")
}
