package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
	"github.com/sportsrental/service-booking/internal/saga"
)

// Outcome is what a payment success signal did to its reservation.
type Outcome string

const (
	OutcomeConfirmed        Outcome = "confirmed"
	OutcomeAlreadyConfirmed Outcome = "already_confirmed"
	OutcomeIgnoredCancelled Outcome = "ignored_cancelled"
)

// PaymentService correlates reservations with external payment intents.
type PaymentService struct {
	reservations reservation.Repository
	checkout     *saga.CheckoutSagaService
	publisher    contracts.Publisher
	currency     string
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	reservations reservation.Repository,
	checkout *saga.CheckoutSagaService,
	publisher contracts.Publisher,
	currency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		reservations: reservations,
		checkout:     checkout,
		publisher:    publisher,
		currency:     currency,
		logger:       logger,
	}
}

// InitiatePayment opens a gateway intent for a pending reservation. When an
// intent is already bound it is returned instead of creating another.
func (s *PaymentService) InitiatePayment(ctx context.Context, reservationID uuid.UUID) (*PaymentIntentDTO, error) {
	r, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.PaymentIntentID() != "" {
		return &PaymentIntentDTO{
			ReservationID:   r.ID(),
			PaymentIntentID: r.PaymentIntentID(),
			Amount:          r.Price(),
			Currency:        s.currency,
		}, nil
	}
	if r.Status() != reservation.StatusPending {
		return nil, apperror.New(apperror.ErrInvalidTransition, "cannot start payment for a %s reservation", r.Status())
	}

	s.logger.Info("initiating payment",
		zap.String("reservation_id", r.ID().String()),
		zap.Int64("amount", r.Price()),
	)

	intent, err := s.checkout.InitiateIntentSaga(ctx, r)
	if err != nil {
		s.logger.Error("failed to initiate payment", zap.String("reservation_id", r.ID().String()), zap.Error(err))
		return nil, err
	}

	return &PaymentIntentDTO{
		ReservationID:   r.ID(),
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}, nil
}

// NotifyIntentCreated binds an intent created outside this service to the reservation.
func (s *PaymentService) NotifyIntentCreated(ctx context.Context, reservationID uuid.UUID, intentID string) (*ReservationDTO, error) {
	r, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	changed, err := r.AttachPaymentIntent(intentID)
	if err != nil {
		return nil, err
	}
	if changed {
		r.IncrementVersion()
		if err := s.reservations.Update(ctx, r); err != nil {
			return nil, err
		}
		s.logger.Info("payment intent bound",
			zap.String("reservation_id", r.ID().String()),
			zap.String("payment_intent_id", r.PaymentIntentID()),
		)
	}
	return toReservationDTO(r), nil
}

// OnIntentSucceeded confirms the reservation bound to intentID. Repeated
// signals are no-ops, and a signal for a cancelled reservation is reported
// as OutcomeIgnoredCancelled rather than an error.
func (s *PaymentService) OnIntentSucceeded(ctx context.Context, intentID string) (Outcome, error) {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return "", apperror.NewValidationError("payment intent id is required")
	}

	outcome, err := s.confirmByIntent(ctx, intentID)
	if errors.Is(err, apperror.ErrConflict) {
		// A concurrent delivery of the same signal won the optimistic lock.
		outcome, err = s.confirmByIntent(ctx, intentID)
	}
	return outcome, err
}

func (s *PaymentService) confirmByIntent(ctx context.Context, intentID string) (Outcome, error) {
	r, err := s.reservations.FindByPaymentIntent(ctx, intentID)
	if err != nil {
		return "", err
	}

	switch r.Status() {
	case reservation.StatusConfirmed:
		s.logger.Debug("payment already applied",
			zap.String("reservation_id", r.ID().String()),
			zap.String("payment_intent_id", intentID),
		)
		return OutcomeAlreadyConfirmed, nil
	case reservation.StatusCancelled:
		s.logger.Warn("payment succeeded for cancelled reservation",
			zap.String("reservation_id", r.ID().String()),
			zap.String("payment_intent_id", intentID),
		)
		return OutcomeIgnoredCancelled, nil
	}

	if err := applyStatus(ctx, s.reservations, s.publisher, s.logger, r, reservation.StatusConfirmed); err != nil {
		return "", err
	}
	return OutcomeConfirmed, nil
}

// HandleIntentSucceeded is the event-consumer entry point for payment.intent.succeeded.
func (s *PaymentService) HandleIntentSucceeded(ctx context.Context, event contracts.PaymentIntentSucceededEvent) error {
	outcome, err := s.OnIntentSucceeded(ctx, event.PaymentIntentID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("no reservation for payment intent, skipping",
				zap.String("payment_intent_id", event.PaymentIntentID),
			)
			return nil
		}
		return err
	}
	s.logger.Info("payment success applied",
		zap.String("payment_intent_id", event.PaymentIntentID),
		zap.String("outcome", string(outcome)),
	)
	return nil
}
