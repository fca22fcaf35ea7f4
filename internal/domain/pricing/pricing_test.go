package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

var bookingDate = timerange.MustParseDate("20-06-2026")

func percentOff(t *testing.T, v float64) *promo.Promotion {
	t.Helper()
	p, err := promo.NewPromotion("Summer", timerange.MustParseDate("01-06-2026"), timerange.MustParseDate("30-06-2026"),
		promo.DiscountTypePercentage, v, nil)
	require.NoError(t, err)
	return p
}

func TestPrice_SingleTier(t *testing.T) {
	slots := []catalog.TimeSlot{{StartHour: 6, EndHour: 23, Price: 500}}

	q, err := Price(slots, timerange.MustFromHours(10, 12), nil, bookingDate, catalog.KindFacility)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), q.Total)
	assert.Equal(t, int64(1000), q.Base)
	assert.Equal(t, 2, q.Hours)
	assert.Nil(t, q.PromotionID)
}

func TestPrice_SpansTiers(t *testing.T) {
	slots := []catalog.TimeSlot{
		{StartHour: 6, EndHour: 12, Price: 300},
		{StartHour: 12, EndHour: 23, Price: 500},
	}

	q, err := Price(slots, timerange.MustFromHours(11, 13), nil, bookingDate, catalog.KindFacility)
	require.NoError(t, err)
	assert.Equal(t, int64(800), q.Total)
}

func TestPrice_PercentagePromotion(t *testing.T) {
	slots := []catalog.TimeSlot{{StartHour: 6, EndHour: 23, Price: 500}}
	p := percentOff(t, 10)

	q, err := Price(slots, timerange.MustFromHours(10, 12), p, bookingDate, catalog.KindFacility)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), q.Base)
	assert.Equal(t, int64(100), q.Discount)
	assert.Equal(t, int64(900), q.Total)
	require.NotNil(t, q.PromotionID)
	assert.Equal(t, p.ID(), *q.PromotionID)
}

func TestPrice_PromotionOutsideWindowIgnored(t *testing.T) {
	slots := []catalog.TimeSlot{{StartHour: 6, EndHour: 23, Price: 500}}

	q, err := Price(slots, timerange.MustFromHours(10, 12), percentOff(t, 10), timerange.MustParseDate("01-07-2026"), catalog.KindFacility)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), q.Total)
	assert.Nil(t, q.PromotionID)
}

func TestPrice_UncoveredHour(t *testing.T) {
	slots := []catalog.TimeSlot{
		{StartHour: 6, EndHour: 10, Price: 300},
		{StartHour: 11, EndHour: 23, Price: 500},
	}

	_, err := Price(slots, timerange.MustFromHours(9, 12), nil, bookingDate, catalog.KindFacility)
	assert.ErrorIs(t, err, apperror.ErrNoApplicableRate)

	_, err = Price(nil, timerange.MustFromHours(9, 12), nil, bookingDate, catalog.KindFacility)
	assert.ErrorIs(t, err, apperror.ErrNoApplicableRate)
}

func TestPrice_ZeroPricedSlotIsCovered(t *testing.T) {
	slots := []catalog.TimeSlot{{StartHour: 6, EndHour: 8, Price: 0}, {StartHour: 8, EndHour: 23, Price: 100}}

	q, err := Price(slots, timerange.MustFromHours(7, 9), nil, bookingDate, catalog.KindApparel)
	require.NoError(t, err)
	assert.Equal(t, int64(100), q.Total)
}

func TestPrice_RejectsBadInput(t *testing.T) {
	_, err := Price([]catalog.TimeSlot{{StartHour: 6, EndHour: 12, Price: 1}, {StartHour: 10, EndHour: 14, Price: 1}},
		timerange.MustFromHours(10, 11), nil, bookingDate, catalog.KindFacility)
	assert.ErrorIs(t, err, apperror.ErrInvalidCatalog)

	_, err = Price([]catalog.TimeSlot{{StartHour: 6, EndHour: 23, Price: 1}},
		timerange.Interval{Start: 600, End: 630}, nil, bookingDate, catalog.KindFacility)
	assert.ErrorIs(t, err, apperror.ErrInvalidInterval)
}

func TestProperty_MonotoneInDuration(t *testing.T) {
	slots := []catalog.TimeSlot{
		{StartHour: 6, EndHour: 12, Price: 300},
		{StartHour: 12, EndHour: 18, Price: 500},
		{StartHour: 18, EndHour: 23, Price: 800},
	}
	discounts := []*promo.Promotion{nil, percentOff(t, 25)}

	for _, d := range discounts {
		for start := 6; start < 23; start++ {
			prev := int64(-1)
			for end := start + 1; end <= 23; end++ {
				q, err := Price(slots, timerange.MustFromHours(start, end), d, bookingDate, catalog.KindFacility)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, q.Total, prev, "%02d-%02d", start, end)
				assert.LessOrEqual(t, q.Total, q.Base)
				assert.GreaterOrEqual(t, q.Total, int64(0))
				prev = q.Total
			}
		}
	}
}
