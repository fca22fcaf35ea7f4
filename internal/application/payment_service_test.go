package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

func pendingReservation(t *testing.T, env *testEnv) *ReservationDTO {
	t.Helper()
	res := env.createResource(t, singleTier())
	r, err := env.bookingSvc.Create(context.Background(), bookingRequest(res, "10:00", "12:00"))
	require.NoError(t, err)
	return r
}

func TestInitiatePayment_BindsIntent(t *testing.T) {
	env := newTestEnv(t)
	r := pendingReservation(t, env)
	ctx := context.Background()

	intent, err := env.paymentSvc.InitiatePayment(ctx, r.ID)
	require.NoError(t, err)
	assert.Contains(t, intent.PaymentIntentID, "pi_mock_")
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Equal(t, int64(1000), intent.Amount)
	assert.Equal(t, "PHP", intent.Currency)

	stored, err := env.bookingSvc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, intent.PaymentIntentID, stored.PaymentIntentID)
	assert.Contains(t, env.publisher.types(), contracts.PaymentIntentCreated)

	again, err := env.paymentSvc.InitiatePayment(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, intent.PaymentIntentID, again.PaymentIntentID, "an already bound intent is reused")
}

func TestInitiatePayment_CancelledReservation(t *testing.T) {
	env := newTestEnv(t)
	r := pendingReservation(t, env)
	ctx := context.Background()

	_, err := env.bookingSvc.SetStatus(ctx, r.ID, "cancelled")
	require.NoError(t, err)

	_, err = env.paymentSvc.InitiatePayment(ctx, r.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestNotifyIntentCreated(t *testing.T) {
	env := newTestEnv(t)
	r := pendingReservation(t, env)
	ctx := context.Background()

	bound, err := env.paymentSvc.NotifyIntentCreated(ctx, r.ID, "pi_external_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_external_1", bound.PaymentIntentID)
	assert.Equal(t, int64(2), bound.Version)

	same, err := env.paymentSvc.NotifyIntentCreated(ctx, r.ID, "pi_external_1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), same.Version)

	_, err = env.paymentSvc.NotifyIntentCreated(ctx, r.ID, "pi_external_2")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = env.paymentSvc.NotifyIntentCreated(ctx, uuid.New(), "pi_external_3")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotifyIntentCreated_IntentAlreadyUsedElsewhere(t *testing.T) {
	env := newTestEnv(t)
	res := env.createResource(t, singleTier())
	ctx := context.Background()

	a, err := env.bookingSvc.Create(ctx, bookingRequest(res, "08:00", "09:00"))
	require.NoError(t, err)
	b, err := env.bookingSvc.Create(ctx, bookingRequest(res, "09:00", "10:00"))
	require.NoError(t, err)

	_, err = env.paymentSvc.NotifyIntentCreated(ctx, a.ID, "pi_shared")
	require.NoError(t, err)
	_, err = env.paymentSvc.NotifyIntentCreated(ctx, b.ID, "pi_shared")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestOnIntentSucceeded_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	r := pendingReservation(t, env)
	ctx := context.Background()

	_, err := env.paymentSvc.NotifyIntentCreated(ctx, r.ID, "pi_1")
	require.NoError(t, err)

	outcome, err := env.paymentSvc.OnIntentSucceeded(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	once, err := env.bookingSvc.Get(ctx, r.ID)
	require.NoError(t, err)

	outcome, err = env.paymentSvc.OnIntentSucceeded(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyConfirmed, outcome)
	twice, err := env.bookingSvc.Get(ctx, r.ID)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, "confirmed", twice.Status)

	confirmedEvents := 0
	for _, typ := range env.publisher.types() {
		if typ == contracts.ReservationConfirmed {
			confirmedEvents++
		}
	}
	assert.Equal(t, 1, confirmedEvents)
}

func TestOnIntentSucceeded_CancelledIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	r := pendingReservation(t, env)
	ctx := context.Background()

	_, err := env.paymentSvc.NotifyIntentCreated(ctx, r.ID, "pi_1")
	require.NoError(t, err)
	_, err = env.bookingSvc.SetStatus(ctx, r.ID, "cancelled")
	require.NoError(t, err)

	outcome, err := env.paymentSvc.OnIntentSucceeded(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnoredCancelled, outcome)

	stored, err := env.bookingSvc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.Status)
}

func TestOnIntentSucceeded_UnknownIntent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.paymentSvc.OnIntentSucceeded(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = env.paymentSvc.OnIntentSucceeded(context.Background(), "")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	err = env.paymentSvc.HandleIntentSucceeded(context.Background(), contracts.PaymentIntentSucceededEvent{PaymentIntentID: "pi_missing"})
	assert.NoError(t, err, "unknown intents are skipped by the consumer")
}
