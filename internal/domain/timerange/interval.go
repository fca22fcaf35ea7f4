// Package timerange provides half-open minute intervals within a single
// facility-local day, and the calendar Date that reservations are keyed by.
package timerange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// MinutesPerHour converts between hour tiers and minute intervals.
const MinutesPerHour = 60

// MinutesPerDay is the exclusive upper bound of a minute-of-day.
const MinutesPerDay = 24 * MinutesPerHour

// Interval is the half-open range [Start, End) in minutes since local midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// New returns [start, end) or ErrInvalidInterval when start >= end or either
// bound falls outside the day.
func New(start, end int) (Interval, error) {
	if start < 0 || end > MinutesPerDay {
		return Interval{}, apperror.New(apperror.ErrInvalidInterval, "%s-%s is outside the day", FormatClock(start), FormatClock(end))
	}
	if start >= end {
		return Interval{}, apperror.New(apperror.ErrInvalidInterval, "start %s must be before end %s", FormatClock(start), FormatClock(end))
	}
	return Interval{Start: start, End: end}, nil
}

// FromHours builds [startHour:00, endHour:00).
func FromHours(startHour, endHour int) (Interval, error) {
	return New(startHour*MinutesPerHour, endHour*MinutesPerHour)
}

// MustFromHours is FromHours for constants and tests.
func MustFromHours(startHour, endHour int) Interval {
	iv, err := FromHours(startHour, endHour)
	if err != nil {
		panic(err)
	}
	return iv
}

// Parse builds an interval from two "HH:MM" clock strings.
func Parse(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return New(s, e)
}

// ParseClock converts "HH:MM" to minutes since midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, apperror.New(apperror.ErrInvalidInterval, "time %q must be HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, apperror.New(apperror.ErrInvalidInterval, "time %q has a non-numeric hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, apperror.New(apperror.ErrInvalidInterval, "time %q has non-numeric minutes", s)
	}
	if hour < 0 || minute < 0 || minute >= MinutesPerHour || hour > 24 || (hour == 24 && minute != 0) {
		return 0, apperror.New(apperror.ErrInvalidInterval, "time %q is out of range", s)
	}
	return hour*MinutesPerHour + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// Overlaps reports whether the two half-open intervals share at least one minute.
// Adjacent intervals (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether minute lies inside [Start, End).
func (iv Interval) Contains(minute int) bool {
	return iv.Start <= minute && minute < iv.End
}

// ContainsInterval reports whether other lies entirely within iv.
func (iv Interval) ContainsInterval(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// Intersect returns the common part of two intervals; ok is false when they are disjoint.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	start := max(iv.Start, other.Start)
	end := min(iv.End, other.End)
	if start >= end {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Clamp trims iv to bounds; ok is false when nothing of iv remains.
func (iv Interval) Clamp(bounds Interval) (Interval, bool) {
	return iv.Intersect(bounds)
}

// DurationMinutes is End - Start.
func (iv Interval) DurationMinutes() int {
	return iv.End - iv.Start
}

// DurationHours returns the length in whole hours; ok is false for a partial hour.
func (iv Interval) DurationHours() (int, bool) {
	d := iv.DurationMinutes()
	return d / MinutesPerHour, d%MinutesPerHour == 0
}

// IsHourAligned reports whether both bounds sit on the hour.
func (iv Interval) IsHourAligned() bool {
	return iv.Start%MinutesPerHour == 0 && iv.End%MinutesPerHour == 0
}

// IsZero reports whether iv is the zero value.
func (iv Interval) IsZero() bool {
	return iv.Start == 0 && iv.End == 0
}

// Key is the normalized "HH:MM-HH:MM" form, stable across equal intervals.
func (iv Interval) Key() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

func (iv Interval) String() string {
	return iv.Key()
}

// Less orders by start, then by end.
func Less(a, b Interval) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// SortByStart sorts intervals in place by start time.
func SortByStart(ivs []Interval) {
	sort.SliceStable(ivs, func(i, j int) bool { return Less(ivs[i], ivs[j]) })
}
