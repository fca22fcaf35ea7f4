// Package pricing computes the charge for a requested interval from a
// resource's hourly tiers and at most one promotion.
package pricing

import (
	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// Quote is the priced breakdown of one booking request.
type Quote struct {
	Base        int64      `json:"base"`
	Discount    int64      `json:"discount"`
	Total       int64      `json:"total"`
	PromotionID *uuid.UUID `json:"promotion_id,omitempty"`
	Hours       int        `json:"hours"`
}

// Price sums slot.price * overlapHours over every tier the interval touches,
// then applies promotion once if it is applicable to a booking of kind on date.
// A nil promotion means no discount.
func Price(slots []catalog.TimeSlot, interval timerange.Interval, promotion *promo.Promotion, date timerange.Date, kind catalog.Kind) (Quote, error) {
	if err := catalog.Validate(slots); err != nil {
		return Quote{}, err
	}
	if interval.Start >= interval.End {
		return Quote{}, apperror.New(apperror.ErrInvalidInterval, "start must be before end")
	}
	hours, whole := interval.DurationHours()
	if !whole || !interval.IsHourAligned() {
		return Quote{}, apperror.New(apperror.ErrInvalidInterval, "%s must start and end on the hour", interval)
	}
	if covered := catalog.CoveredMinutes(slots, interval); covered < interval.DurationMinutes() {
		return Quote{}, apperror.New(apperror.ErrNoApplicableRate, "%d of %d hours in %s have no rate",
			(interval.DurationMinutes()-covered)/timerange.MinutesPerHour, hours, interval)
	}

	var base int64
	for _, s := range slots {
		base += catalog.PriceOfOverlap(s, interval)
	}

	q := Quote{Base: base, Total: base, Hours: hours}
	if promotion != nil && promotion.IsApplicable(date, kind) {
		q.Total = promotion.Apply(base)
		q.Discount = base - q.Total
		id := promotion.ID()
		q.PromotionID = &id
	}
	return q, nil
}
