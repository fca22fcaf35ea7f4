package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

func tieredSlots() []TimeSlot {
	return []TimeSlot{
		{StartHour: 6, EndHour: 12, Price: 500},
		{StartHour: 12, EndHour: 18, Price: 700},
		{StartHour: 18, EndHour: 23, Price: 900},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		slots   []TimeSlot
		wantErr bool
	}{
		{"tiered full day", tieredSlots(), false},
		{"empty", nil, false},
		{"gap allowed", []TimeSlot{{6, 8, 100}, {10, 12, 100}}, false},
		{"before opening", []TimeSlot{{5, 8, 100}}, true},
		{"after closing", []TimeSlot{{20, 24, 100}}, true},
		{"empty slot", []TimeSlot{{8, 8, 100}}, true},
		{"reversed", []TimeSlot{{10, 8, 100}}, true},
		{"negative price", []TimeSlot{{8, 9, -1}}, true},
		{"overlapping", []TimeSlot{{6, 10, 100}, {9, 12, 200}}, true},
		{"free slot", []TimeSlot{{6, 7, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.slots)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrInvalidCatalog)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPriceOfOverlap(t *testing.T) {
	slot := TimeSlot{StartHour: 12, EndHour: 18, Price: 700}

	assert.Equal(t, int64(1400), PriceOfOverlap(slot, timerange.MustFromHours(11, 14)))
	assert.Equal(t, int64(4200), PriceOfOverlap(slot, timerange.MustFromHours(6, 23)))
	assert.Equal(t, int64(0), PriceOfOverlap(slot, timerange.MustFromHours(18, 20)))
}

func TestCoveredMinutes(t *testing.T) {
	slots := []TimeSlot{{6, 8, 100}, {10, 12, 100}}
	assert.Equal(t, 120, CoveredMinutes(slots, timerange.MustFromHours(7, 11)))
	assert.Equal(t, 0, CoveredMinutes(slots, timerange.MustFromHours(8, 10)))
}

func TestOperatingHours(t *testing.T) {
	iv, ok := OperatingHours([]TimeSlot{{10, 12, 1}, {7, 9, 1}, {15, 20, 1}})
	require.True(t, ok)
	assert.Equal(t, timerange.MustFromHours(7, 20), iv)

	_, ok = OperatingHours(nil)
	assert.False(t, ok)
}

func TestNewResource(t *testing.T) {
	r, err := NewResource(KindFacility, " Court A ", "basketball", tieredSlots(), true, []string{"volleyball"})
	require.NoError(t, err)
	assert.Equal(t, "Court A", r.Name())
	assert.True(t, r.SupportsConversionTo("volleyball"))
	assert.False(t, r.SupportsConversionTo("tennis"))

	_, err = NewResource(KindFacility, "Court B", "basketball", tieredSlots(), true, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidConversion)

	_, err = NewResource(KindFacility, "Court C", "basketball", tieredSlots(), false, []string{"volleyball"})
	assert.ErrorIs(t, err, apperror.ErrInvalidConversion)

	_, err = NewResource(KindApparel, "Jersey", "basketball", []TimeSlot{{5, 7, 10}}, false, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidCatalog)

	_, err = NewResource("boat", "Kayak", "rowing", tieredSlots(), false, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestResource_SlotsAreCopied(t *testing.T) {
	slots := tieredSlots()
	r, err := NewResource(KindApparel, "Jersey", "basketball", slots, false, nil)
	require.NoError(t, err)

	slots[0].Price = 1
	got := r.TimeSlots()
	assert.Equal(t, int64(500), got[0].Price)
	got[1].Price = 1
	assert.Equal(t, int64(700), r.TimeSlots()[1].Price)
}
