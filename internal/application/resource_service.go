package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
)

// ResourceService defines and looks up bookable resources.
type ResourceService struct {
	repo     catalog.ResourceRepository
	validate *requestValidator
	logger   *zap.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(repo catalog.ResourceRepository, logger *zap.Logger) *ResourceService {
	return &ResourceService{repo: repo, validate: newRequestValidator(), logger: logger}
}

// Create validates the slot catalog and conversion settings, then stores the resource.
func (s *ResourceService) Create(ctx context.Context, req CreateResourceRequest) (*ResourceDTO, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	slots := make([]catalog.TimeSlot, len(req.TimeSlots))
	for i, ts := range req.TimeSlots {
		slots[i] = catalog.TimeSlot{StartHour: ts.Start, EndHour: ts.End, Price: ts.Price}
	}

	r, err := catalog.NewResource(catalog.Kind(req.Kind), req.Name, req.Sport, slots, req.Convertible, req.OtherSports)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save resource: %w", err)
	}

	s.logger.Info("resource created",
		zap.String("resource_id", r.ID().String()),
		zap.String("kind", string(r.Kind())),
		zap.Int("time_slots", len(slots)),
	)
	return toResourceDTO(r), nil
}

// Get retrieves a resource by its ID.
func (s *ResourceService) Get(ctx context.Context, id uuid.UUID) (*ResourceDTO, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResourceDTO(r), nil
}
