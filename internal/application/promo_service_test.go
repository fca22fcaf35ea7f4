package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

func TestPromoService_CreateListSetStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	later, err := env.promoSvc.Create(ctx, CreatePromotionRequest{
		Title: "July", StartDate: "01-07-2026", EndDate: "31-07-2026", DiscountType: "amount", DiscountValue: 100,
	})
	require.NoError(t, err)
	earlier, err := env.promoSvc.Create(ctx, CreatePromotionRequest{
		Title: "June", StartDate: "01-06-2026", EndDate: "30-06-2026", DiscountType: "percentage", DiscountValue: 15,
		Exclusions: []string{"apparel"},
	})
	require.NoError(t, err)
	assert.Equal(t, "active", earlier.Status)
	assert.Equal(t, []string{"apparel"}, earlier.Exclusions)

	list, err := env.promoSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, earlier.ID, list[0].ID)
	assert.Equal(t, later.ID, list[1].ID)

	updated, err := env.promoSvc.SetStatus(ctx, earlier.ID, "inactive")
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)

	_, err = env.promoSvc.SetStatus(ctx, earlier.ID, "paused")
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus)

	_, err = env.promoSvc.SetStatus(ctx, uuid.New(), "active")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPromoService_InactivePromotionNotApplied(t *testing.T) {
	env := newTestEnv(t)
	res := env.createResource(t, singleTier())
	ctx := context.Background()

	p, err := env.promoSvc.Create(ctx, CreatePromotionRequest{
		Title: "Ten off", StartDate: "01-06-2026", EndDate: "30-06-2026", DiscountType: "percentage", DiscountValue: 10,
	})
	require.NoError(t, err)
	_, err = env.promoSvc.SetStatus(ctx, p.ID, "inactive")
	require.NoError(t, err)

	r, err := env.bookingSvc.Create(ctx, bookingRequest(res, "10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), r.Price)
	assert.Nil(t, r.PromotionID)
}

func TestPromoService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.promoSvc.Create(ctx, CreatePromotionRequest{
		Title: "Bad", StartDate: "01-06-2026", EndDate: "30-06-2026", DiscountType: "fixed", DiscountValue: 10,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.promoSvc.Create(ctx, CreatePromotionRequest{
		Title: "Bad", StartDate: "01-06-2026", EndDate: "30-06-2026", DiscountType: "percentage", DiscountValue: 120,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.promoSvc.Create(ctx, CreatePromotionRequest{
		Title: "Bad", StartDate: "01-06-2026", EndDate: "30-06-2026", DiscountType: "amount", DiscountValue: 10,
		Exclusions: []string{"boats"},
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
