package domain

import (
	"fmt"

	"github.com/m04kA/SpaceBookingService/pkg/types"
)

// TimeRange is a half-open interval [Start, End) of wall-clock time within
// one calendar day. The date it applies to is carried separately.
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange parses "HH:MM" bounds and validates start < end
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	return NewTimeRangeFromTimes(s, e)
}

// NewTimeRangeFromTimes validates already parsed bounds
func NewTimeRangeFromTimes(start, end types.TimeString) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// MustTimeRange is NewTimeRange that panics on error
func MustTimeRange(start, end string) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks both bounds are set, inside the day and ordered
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// DurationMinutes returns End - Start in minutes
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

// Contains reports whether other lies entirely within r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.IsBefore(r.Start) && !other.End.IsAfter(r.End)
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Overlaps is the half-open interval intersection test.
// Ranges that only share a boundary (10:00-11:00 and 11:00-12:00) do not overlap.
func Overlaps(a, b TimeRange) bool {
	return a.Start.Minutes() < b.End.Minutes() && b.Start.Minutes() < a.End.Minutes()
}
