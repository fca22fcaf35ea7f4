package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ResourceRepository defines persistence operations for resources.
type ResourceRepository interface {
	// FindByID returns ErrNotFound when the resource does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)

	Save(ctx context.Context, r *Resource) error
}
