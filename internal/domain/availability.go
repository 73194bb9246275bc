package domain

import (
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SpaceBookingService/pkg/types"
)

// OpenSlots yields the free fixed-width slots of space on date, in ascending order.
//
// Candidate slots of granularityMinutes (DefaultSlotGranularityMinutes when <= 0)
// are laid out from the start of operating hours; a trailing slot that would end
// after closing is dropped. A candidate is free iff no active reservation of the
// space on date overlaps it. The sequence is lazy and can be ranged over again.
func OpenSlots(space Space, date time.Time, active []*Reservation, granularityMinutes int) iter.Seq[TimeRange] {
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultSlotGranularityMinutes
	}

	return func(yield func(TimeRange) bool) {
		hours := space.OperatingHours
		if hours.Validate() != nil {
			return
		}

		blocking := blockingRanges(space.ID, date, active)

		for start := hours.Start.Minutes(); start+granularityMinutes <= hours.End.Minutes(); start += granularityMinutes {
			slot := minuteRange(start, start+granularityMinutes)
			if overlapsAny(slot, blocking) {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// CollectOpenSlots materializes OpenSlots
func CollectOpenSlots(space Space, date time.Time, active []*Reservation, granularityMinutes int) []TimeRange {
	slots := slices.Collect(OpenSlots(space, date, active, granularityMinutes))
	if slots == nil {
		return []TimeRange{}
	}
	return slots
}

// blockingRanges keeps active reservations of spaceID on date
func blockingRanges(spaceID int64, date time.Time, reservations []*Reservation) []TimeRange {
	out := make([]TimeRange, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || !r.IsActive() || r.SpaceID != spaceID || !SameDate(r.Date, date) {
			continue
		}
		out = append(out, r.Range)
	}
	return out
}

func overlapsAny(slot TimeRange, ranges []TimeRange) bool {
	for _, r := range ranges {
		if Overlaps(slot, r) {
			return true
		}
	}
	return false
}

// minuteRange builds a range from bounds already known to be inside the day
func minuteRange(start, end int) TimeRange {
	s, _ := types.NewTimeStringFromMinutes(start)
	e, _ := types.NewTimeStringFromMinutes(end)
	return TimeRange{Start: s, End: e}
}
