package models

import (
	"fmt"
	"time"
)

// RequestFilter narrows the set returned by a persistence listRequests call.
// Zero values mean "no restriction".
type RequestFilter struct {
	RequesterID string
	OwnerID     string
	VenueID     string
	Statuses    []Status
	CreatedFrom time.Time
}

func (f RequestFilter) HasStatus(s Status) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, st := range f.Statuses {
		if st == s {
			return true
		}
	}
	return false
}

type TimeRange string

const (
	RangeAll   TimeRange = "all"
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
)

// ParseTimeRange accepts an empty string as RangeAll.
func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(s); r {
	case "":
		return RangeAll, nil
	case RangeAll, RangeToday, RangeWeek, RangeMonth, RangeYear:
		return r, nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Since returns the lower createdAt bound for the range relative to now.
// The zero time means unbounded.
func (r TimeRange) Since(now time.Time) time.Time {
	switch r {
	case RangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, 0, -30)
	case RangeYear:
		return now.AddDate(0, 0, -365)
	}
	return time.Time{}
}

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPriceHigh SortOrder = "price-high"
	SortPriceLow  SortOrder = "price-low"
	SortDateNear  SortOrder = "date-near"
	SortDateFar   SortOrder = "date-far"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortPriceHigh, SortPriceLow, SortDateNear, SortDateFar:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// ListQuery is what a caller asks for when listing requests.
type ListQuery struct {
	VenueID  string
	Statuses []Status
	Range    TimeRange
	Search   string
	Sort     SortOrder
}
