package itinerary

import (
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-builder/internal/domain"
)

// MaxTripDays is the longest itinerary a draft may hold.
const MaxTripDays = 366

// DateRange returns every calendar date from start to end inclusive, in
// ascending order. Both bounds are truncated to UTC midnight first.
// It returns nil when end is before start.
func DateRange(start, end time.Time) []time.Time {
	start, end = truncateDate(start), truncateDate(end)
	if end.Before(start) {
		return nil
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD)", domain.ErrValidation, s)
	}
	return t, nil
}

// tripLength is the number of calendar days from start to end inclusive.
// Spans beyond the range of time.Duration saturate, which is still far above
// MaxTripDays.
func tripLength(start, end time.Time) int {
	return int(truncateDate(end).Sub(truncateDate(start))/(24*time.Hour)) + 1
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format(openapi_types.DateFormat)
}
