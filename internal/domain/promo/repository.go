package promo

import (
	"context"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
)

// Repository defines persistence operations for promotions.
type Repository interface {
	Save(ctx context.Context, p *Promotion) error
	Update(ctx context.Context, p *Promotion) error
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	List(ctx context.Context) ([]*Promotion, error)

	// FindApplicable returns the promotion that applies to a booking of kind
	// on date, or nil when none does.
	FindApplicable(ctx context.Context, date timerange.Date, kind catalog.Kind) (*Promotion, error)
}
