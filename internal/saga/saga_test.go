package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/adapter"
	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
	"github.com/sportsrental/service-booking/internal/repository/memory"
)

func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	var calls []string
	s := NewSaga("test", zap.NewNop())
	s.AddStep(SagaStep{
		Name:       "one",
		Execute:    func(context.Context) error { calls = append(calls, "exec one"); return nil },
		Compensate: func(context.Context) error { calls = append(calls, "undo one"); return nil },
	})
	s.AddStep(SagaStep{
		Name:    "two",
		Execute: func(context.Context) error { calls = append(calls, "exec two"); return nil },
	})
	s.AddStep(SagaStep{
		Name:       "three",
		Execute:    func(context.Context) error { return errors.New("boom") },
		Compensate: func(context.Context) error { calls = append(calls, "undo three"); return nil },
	})

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 'three'")
	assert.Equal(t, []string{"exec one", "exec two", "undo one"}, calls)
}

func TestSaga_WrapsStepError(t *testing.T) {
	s := NewSaga("test", zap.NewNop())
	s.AddStep(SagaStep{Name: "fail", Execute: func(context.Context) error { return apperror.NewConflictError("taken") }})

	assert.ErrorIs(t, s.Execute(context.Background()), apperror.ErrConflict)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, contracts.Keyed) error { return nil }

// staleRepo fails every Update as if another writer got there first.
type staleRepo struct {
	*memory.ReservationStore
}

func (staleRepo) Update(context.Context, *reservation.Reservation) error {
	return apperror.NewConflictError("reservation was modified by another transaction")
}

func pending(t *testing.T) *reservation.Reservation {
	t.Helper()
	res, err := catalog.NewResource(catalog.KindFacility, "Court", "basketball",
		[]catalog.TimeSlot{{StartHour: 6, EndHour: 23, Price: 500}}, false, nil)
	require.NoError(t, err)
	r, err := reservation.New(reservation.NewParams{
		Resource: res,
		Date:     timerange.DateOf(time.Now()),
		Interval: timerange.MustFromHours(10, 11),
		Price:    500,
		Contact:  reservation.Contact{Name: "A", Email: "a@example.com", Phone: "1"},
	})
	require.NoError(t, err)
	return r
}

func TestInitiateIntentSaga_CancelsIntentWhenBindFails(t *testing.T) {
	gateway := adapter.NewMockPaymentGateway(zap.NewNop())
	store := memory.NewReservationStore()
	svc := NewCheckoutSagaService(staleRepo{store}, gateway, nopPublisher{}, "PHP", zap.NewNop())

	r := pending(t)
	_, err := svc.InitiateIntentSaga(context.Background(), r)
	require.ErrorIs(t, err, apperror.ErrConflict)

	require.NotEmpty(t, r.PaymentIntentID())
	assert.True(t, gateway.WasCancelled(r.PaymentIntentID()))
}

func TestInitiateIntentSaga_Success(t *testing.T) {
	gateway := adapter.NewMockPaymentGateway(zap.NewNop())
	store := memory.NewReservationStore()
	svc := NewCheckoutSagaService(store, gateway, nopPublisher{}, "PHP", zap.NewNop())

	r := pending(t)
	require.NoError(t, store.Insert(context.Background(), r))

	intent, err := svc.InitiateIntentSaga(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, int64(500), intent.Amount)
	assert.False(t, gateway.WasCancelled(intent.ID))

	stored, err := store.FindByPaymentIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID(), stored.ID())
	assert.NotEqual(t, uuid.Nil, stored.ID())
}
