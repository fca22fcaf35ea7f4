package saga

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/adapter"
	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
)

// CheckoutSagaService opens payment intents for pending reservations.
type CheckoutSagaService struct {
	repo      reservation.Repository
	gateway   adapter.PaymentGateway
	publisher contracts.Publisher
	currency  string
	logger    *zap.Logger
}

// NewCheckoutSagaService creates a new CheckoutSagaService.
func NewCheckoutSagaService(
	repo reservation.Repository,
	gateway adapter.PaymentGateway,
	publisher contracts.Publisher,
	currency string,
	logger *zap.Logger,
) *CheckoutSagaService {
	return &CheckoutSagaService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		currency:  currency,
		logger:    logger,
	}
}

// InitiateIntentSaga creates a gateway intent for r and binds it. If binding
// fails the intent is cancelled at the gateway. The created event is best effort.
func (s *CheckoutSagaService) InitiateIntentSaga(ctx context.Context, r *reservation.Reservation) (adapter.PaymentIntent, error) {
	var intent adapter.PaymentIntent

	saga := NewSaga("initiate_payment_intent", s.logger)

	saga.AddStep(SagaStep{
		Name: "create_payment_intent",
		Execute: func(ctx context.Context) error {
			var err error
			intent, err = s.gateway.CreatePaymentIntent(ctx, r.ID(), r.Price(), s.currency, r.Contact().Email)
			return err
		},
		Compensate: func(ctx context.Context) error {
			return s.gateway.CancelPaymentIntent(ctx, intent.ID)
		},
	})

	saga.AddStep(SagaStep{
		Name: "bind_payment_intent",
		Execute: func(ctx context.Context) error {
			if _, err := r.AttachPaymentIntent(intent.ID); err != nil {
				return err
			}
			r.IncrementVersion()
			return s.repo.Update(ctx, r)
		},
	})

	if err := saga.Execute(ctx); err != nil {
		return adapter.PaymentIntent{}, err
	}

	event := contracts.PaymentIntentCreatedEvent{
		ReservationID:   r.ID(),
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		OccurredAt:      time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, contracts.PaymentIntentCreated, event); err != nil {
		s.logger.Error("failed to publish payment intent created event",
			zap.String("reservation_id", r.ID().String()),
			zap.String("payment_intent_id", intent.ID),
			zap.Error(err),
		)
	}

	return intent, nil
}
