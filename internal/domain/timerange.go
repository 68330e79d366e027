package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a range would be empty or inverted.
var ErrInvalidRange = errors.New("domain: end time must be after start time")

// TimeRange is a half-open time interval [start, end): the start instant
// belongs to the range, the end instant does not. Two bookings where one
// ends exactly when the other starts therefore never overlap.
//
// The fields are unexported so a TimeRange can only be built through
// NewTimeRange, which keeps the invariant end > start.
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange builds a validated range. Returns ErrInvalidRange when
// end is not strictly after start (empty ranges are rejected too).
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, fmt.Errorf("%w: start=%s, end=%s",
			ErrInvalidRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{start: start, end: end}, nil
}

// Start returns the inclusive start of the range.
func (r TimeRange) Start() time.Time {
	return r.start
}

// End returns the exclusive end of the range.
func (r TimeRange) End() time.Time {
	return r.end
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Minutes returns the length of the range in whole minutes.
func (r TimeRange) Minutes() int {
	return int(r.Duration().Minutes())
}

// Overlaps reports whether two half-open ranges share any instant.
// Strict inequalities make touching boundaries (r.end == other.start)
// a non-overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Contains reports whether the instant t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// IsZero reports whether the range is the zero value.
func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}
