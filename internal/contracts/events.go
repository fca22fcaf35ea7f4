// Package contracts holds the topic names, event types and payloads this
// service exchanges with the rest of the platform.
package contracts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source identifies this service on outgoing CloudEvents.
const Source = "service-booking"

// Topics.
const (
	TopicReservationEvents = "reservation.events"
	TopicPaymentEvents     = "payment.events"
)

// Event types.
const (
	ReservationCreated   = "reservation.created"
	ReservationConfirmed = "reservation.confirmed"
	ReservationCancelled = "reservation.cancelled"

	PaymentIntentCreated   = "payment.intent.created"
	PaymentIntentSucceeded = "payment.intent.succeeded"
)

// TopicFor returns the topic an event type is published on.
func TopicFor(eventType string) string {
	if strings.HasPrefix(eventType, "payment.") {
		return TopicPaymentEvents
	}
	return TopicReservationEvents
}

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload Keyed) error
}

// Keyed payloads carry the id used as the message key, keeping every event
// for one reservation on the same partition.
type Keyed interface {
	EventKey() string
}

// ReservationCreatedEvent is published when a pending reservation is stored.
type ReservationCreatedEvent struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	ResourceID    uuid.UUID  `json:"resource_id"`
	ResourceKind  string     `json:"resource_kind"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Price         int64      `json:"price"`
	BasePrice     int64      `json:"base_price"`
	PromotionID   *uuid.UUID `json:"promotion_id,omitempty"`
	ConvertedTo   string     `json:"converted_to,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (e ReservationCreatedEvent) EventKey() string { return e.ReservationID.String() }

// ReservationStatusChangedEvent is published for confirmed and cancelled transitions.
type ReservationStatusChangedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	ResourceID      uuid.UUID `json:"resource_id"`
	Date            string    `json:"date"`
	PreviousStatus  string    `json:"previous_status"`
	Status          string    `json:"status"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (e ReservationStatusChangedEvent) EventKey() string { return e.ReservationID.String() }

// PaymentIntentCreatedEvent is published once an intent is bound to a reservation.
type PaymentIntentCreatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (e PaymentIntentCreatedEvent) EventKey() string { return e.ReservationID.String() }

// PaymentIntentSucceededEvent is consumed from the payment gateway bridge.
type PaymentIntentSucceededEvent struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (e PaymentIntentSucceededEvent) EventKey() string { return e.PaymentIntentID }

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Keyed) error { return nil }
