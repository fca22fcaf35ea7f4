package catalog

import (
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// Bookable hours of the day. Slots and reservations must fall inside.
const (
	OpeningHour = 6
	ClosingHour = 23
)

// TimeSlot is one priced hourly tier of a resource, [StartHour, EndHour).
type TimeSlot struct {
	StartHour int   `json:"start"`
	EndHour   int   `json:"end"`
	Price     int64 `json:"price"` // per hour, minor units
}

// Interval returns the slot as a minute interval.
func (s TimeSlot) Interval() timerange.Interval {
	return timerange.Interval{Start: s.StartHour * timerange.MinutesPerHour, End: s.EndHour * timerange.MinutesPerHour}
}

// Validate checks a resource's slot catalog: every slot inside the operating
// hours with start < end and a non-negative price, and no two slots overlapping.
// Gaps between slots are allowed.
func Validate(slots []TimeSlot) error {
	for i, s := range slots {
		if s.StartHour < OpeningHour || s.EndHour > ClosingHour {
			return apperror.New(apperror.ErrInvalidCatalog, "slot %d (%d-%d) is outside %d-%d", i, s.StartHour, s.EndHour, OpeningHour, ClosingHour)
		}
		if s.StartHour >= s.EndHour {
			return apperror.New(apperror.ErrInvalidCatalog, "slot %d start %d must be before end %d", i, s.StartHour, s.EndHour)
		}
		if s.Price < 0 {
			return apperror.New(apperror.ErrInvalidCatalog, "slot %d has negative price %d", i, s.Price)
		}
	}
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Interval().Overlaps(slots[j].Interval()) {
				return apperror.New(apperror.ErrInvalidCatalog, "slots %d and %d overlap", i, j)
			}
		}
	}
	return nil
}

// PriceOfOverlap is the slot's hourly price times the whole hours the
// candidate spends inside it; zero when they are disjoint.
func PriceOfOverlap(slot TimeSlot, candidate timerange.Interval) int64 {
	overlap, ok := slot.Interval().Intersect(candidate)
	if !ok {
		return 0
	}
	hours := overlap.DurationMinutes() / timerange.MinutesPerHour
	return slot.Price * int64(hours)
}

// CoveredMinutes counts how many minutes of candidate fall inside some slot.
// Slots are assumed to be valid (pairwise disjoint).
func CoveredMinutes(slots []TimeSlot, candidate timerange.Interval) int {
	covered := 0
	for _, s := range slots {
		if overlap, ok := s.Interval().Intersect(candidate); ok {
			covered += overlap.DurationMinutes()
		}
	}
	return covered
}

// OperatingHours spans the earliest slot start to the latest slot end.
// ok is false for an empty catalog.
func OperatingHours(slots []TimeSlot) (timerange.Interval, bool) {
	if len(slots) == 0 {
		return timerange.Interval{}, false
	}
	start, end := slots[0].StartHour, slots[0].EndHour
	for _, s := range slots[1:] {
		start = min(start, s.StartHour)
		end = max(end, s.EndHour)
	}
	return timerange.Interval{Start: start * timerange.MinutesPerHour, End: end * timerange.MinutesPerHour}, true
}

// BookableDay is the window every reservation interval must sit inside.
func BookableDay() timerange.Interval {
	return timerange.Interval{Start: OpeningHour * timerange.MinutesPerHour, End: ClosingHour * timerange.MinutesPerHour}
}
