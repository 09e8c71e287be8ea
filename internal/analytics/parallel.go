package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

// SummarizeParallel splits reqs into at most shards contiguous parts, totals each part
// in its own goroutine and merges the partial totals. The result matches Summarize up to
// floating point summation order.
func SummarizeParallel(ctx context.Context, reqs []models.BookingRequest, shards int, capacity *int) (Summary, error) {
	t, err := sumShards(ctx, reqs, shards)
	if err != nil {
		return Summary{}, err
	}
	return t.summary(capacity), nil
}

func sumShards(ctx context.Context, reqs []models.BookingRequest, shards int) (totals, error) {
	shards = min(shards, len(reqs))
	if shards <= 1 {
		t := newTotals()
		for _, r := range reqs {
			t.add(r)
		}
		return t, nil
	}

	parts := make([]totals, shards)
	size := (len(reqs) + shards - 1) / shards

	g, gctx := errgroup.WithContext(ctx)
	for i := range shards {
		lo := min(i*size, len(reqs))
		hi := min(lo+size, len(reqs))

		g.Go(func() error {
			t := newTotals()
			for j := lo; j < hi; j++ {
				if j%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				t.add(reqs[j])
			}
			parts[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return totals{}, err
	}

	total := newTotals()
	for _, p := range parts {
		total.merge(p)
	}

	return total, nil
}
