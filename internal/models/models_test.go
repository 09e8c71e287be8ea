package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRangeSince(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 18, 45, 0, 0, time.UTC)

	testCases := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"all", time.Time{}},
		{"today", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"week", now.AddDate(0, 0, -7)},
		{"month", now.AddDate(0, 0, -30)},
		{"year", now.AddDate(0, 0, -365)},
	}

	for _, tc := range testCases {
		r, err := ParseTimeRange(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, r.Since(now), tc.in)
	}

	_, err := ParseTimeRange("quarter")
	assert.EqualError(t, err, `unknown time range "quarter"`)
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	o, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, o)

	o, err = ParseSortOrder("date-far")
	require.NoError(t, err)
	assert.Equal(t, SortDateFar, o)

	_, err = ParseSortOrder("cheapest")
	assert.Error(t, err)
}

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, s.Terminal(), s.Open(), s)
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	verr := NewValidationError("party_size", "must be at least 1")
	verr.Add("email", "must be a valid email")

	err := fmt.Errorf("lifecycle.Submit: %w", verr)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, "lifecycle.Submit: field email must be a valid email, field party_size must be at least 1", err.Error())

	terr := fmt.Errorf("lifecycle.Cancel: %w", &TransitionError{From: StatusPending, Action: "cancel"})
	assert.True(t, errors.Is(terr, ErrInvalidTransition))
	assert.EqualError(t, terr, "lifecycle.Cancel: cannot cancel request in status pending")
}

func TestFilterHasStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, RequestFilter{}.HasStatus(StatusCanceled))

	f := RequestFilter{Statuses: []Status{StatusPending, StatusApproved}}
	assert.True(t, f.HasStatus(StatusApproved))
	assert.False(t, f.HasStatus(StatusRejected))
}

func TestCloneDetachesRequester(t *testing.T) {
	t.Parallel()

	id := "user-1"
	r := BookingRequest{ID: "req-1", RequesterID: &id}

	c := r.Clone()
	*c.RequesterID = "user-2"

	assert.Equal(t, "user-1", *r.RequesterID)
}
