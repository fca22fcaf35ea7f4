package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentIntent is the gateway's view of a created intent.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// PaymentGateway is the Anti-Corruption Layer for the external payment provider.
// The booking engine only creates and cancels intents; success arrives asynchronously.
type PaymentGateway interface {
	// CreatePaymentIntent opens an intent for amount in minor units.
	CreatePaymentIntent(ctx context.Context, reservationID uuid.UUID, amount int64, currency, customerEmail string) (PaymentIntent, error)

	// CancelPaymentIntent voids an intent that has not succeeded.
	CancelPaymentIntent(ctx context.Context, paymentIntentID string) error
}

// MockPaymentGateway is a development/testing implementation of PaymentGateway.
// It simulates the provider without network calls.
type MockPaymentGateway struct {
	logger *zap.Logger

	mu        sync.Mutex
	cancelled map[string]bool
}

// NewMockPaymentGateway creates a new mock gateway for development.
func NewMockPaymentGateway(logger *zap.Logger) *MockPaymentGateway {
	return &MockPaymentGateway{logger: logger, cancelled: make(map[string]bool)}
}

// CreatePaymentIntent simulates creating an intent and returns mock ids.
func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, reservationID uuid.UUID, amount int64, currency, customerEmail string) (PaymentIntent, error) {
	if amount < 0 {
		return PaymentIntent{}, fmt.Errorf("amount must not be negative: %d", amount)
	}
	id := fmt.Sprintf("pi_mock_%s", uuid.New().String()[:8])

	m.logger.Info("[MOCK GATEWAY] payment intent created",
		zap.String("payment_intent_id", id),
		zap.String("reservation_id", reservationID.String()),
		zap.Int64("amount", amount),
		zap.String("currency", currency),
		zap.String("customer_email", customerEmail),
	)

	return PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_mock",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

// CancelPaymentIntent simulates cancelling an intent.
func (m *MockPaymentGateway) CancelPaymentIntent(ctx context.Context, paymentIntentID string) error {
	m.mu.Lock()
	m.cancelled[paymentIntentID] = true
	m.mu.Unlock()

	m.logger.Info("[MOCK GATEWAY] payment intent cancelled",
		zap.String("payment_intent_id", paymentIntentID),
	)
	return nil
}

// WasCancelled reports whether CancelPaymentIntent was called for the id.
func (m *MockPaymentGateway) WasCancelled(paymentIntentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelled[paymentIntentID]
}
