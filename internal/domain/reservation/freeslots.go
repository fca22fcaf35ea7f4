package reservation

import "github.com/sportsrental/service-booking/internal/domain/timerange"

// FreeSlots returns the maximal free sub-intervals of [dayStart, dayEnd),
// ordered by start. Cancelled reservations are ignored, reservations reaching
// past the day are clamped to it, and the input need not be sorted.
func FreeSlots(existing []*Reservation, dayStart, dayEnd int) []timerange.Interval {
	if dayStart >= dayEnd {
		return nil
	}
	day := timerange.Interval{Start: dayStart, End: dayEnd}

	busy := make([]timerange.Interval, 0, len(existing))
	for _, r := range existing {
		if r == nil || !r.IsActive() {
			continue
		}
		if clamped, ok := r.interval.Clamp(day); ok {
			busy = append(busy, clamped)
		}
	}
	timerange.SortByStart(busy)

	free := make([]timerange.Interval, 0, len(busy)+1)
	cursor := dayStart
	for _, b := range busy {
		if cursor < b.Start {
			free = append(free, timerange.Interval{Start: cursor, End: b.Start})
		}
		cursor = max(cursor, b.End)
	}
	if cursor < dayEnd {
		free = append(free, timerange.Interval{Start: cursor, End: dayEnd})
	}
	return free
}
