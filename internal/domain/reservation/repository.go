package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/timerange"
)

// Repository defines the persistence contract for Reservation aggregates.
type Repository interface {
	// ListActive returns every non-cancelled reservation for the resource and day, in any order.
	ListActive(ctx context.Context, resourceID uuid.UUID, date timerange.Date) ([]*Reservation, error)

	// ListForDay returns all reservations for the resource and day, cancelled included.
	ListForDay(ctx context.Context, resourceID uuid.UUID, date timerange.Date) ([]*Reservation, error)

	// Insert persists a new reservation. It fails with ErrConflict when an
	// overlapping active reservation already exists.
	Insert(ctx context.Context, r *Reservation) error

	// Update persists status or intent changes with optimistic locking.
	Update(ctx context.Context, r *Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	FindByPaymentIntent(ctx context.Context, intentID string) (*Reservation, error)

	// WithinResourceLock runs fn while holding an exclusive lock on the
	// resource's day. fn must use the repository it is handed.
	WithinResourceLock(ctx context.Context, resourceID uuid.UUID, date timerange.Date, fn func(ctx context.Context, repo Repository) error) error
}
