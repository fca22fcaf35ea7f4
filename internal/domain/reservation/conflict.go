package reservation

import "github.com/sportsrental/service-booking/internal/domain/timerange"

// HasConflict reports whether candidate overlaps any non-cancelled reservation
// in existing. Callers pass the reservations of one resource and day.
func HasConflict(existing []*Reservation, candidate timerange.Interval) bool {
	return FirstConflict(existing, candidate) != nil
}

// FirstConflict returns the first non-cancelled reservation overlapping candidate, or nil.
func FirstConflict(existing []*Reservation, candidate timerange.Interval) *Reservation {
	for _, r := range existing {
		if r == nil || !r.IsActive() {
			continue
		}
		if r.interval.Overlaps(candidate) {
			return r
		}
	}
	return nil
}
