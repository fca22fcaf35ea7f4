package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	promoDomain "github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
)

// PromoService handles promotion use cases.
type PromoService struct {
	repo     promoDomain.Repository
	validate *requestValidator
	logger   *zap.Logger
}

// NewPromoService creates a new PromoService.
func NewPromoService(repo promoDomain.Repository, logger *zap.Logger) *PromoService {
	return &PromoService{repo: repo, validate: newRequestValidator(), logger: logger}
}

// Create creates a new active promotion.
func (s *PromoService) Create(ctx context.Context, req CreatePromotionRequest) (*PromotionDTO, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	start, err := timerange.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := timerange.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	exclusions := make([]catalog.Kind, len(req.Exclusions))
	for i, e := range req.Exclusions {
		exclusions[i] = catalog.Kind(e)
	}

	p, err := promoDomain.NewPromotion(req.Title, start, end, promoDomain.DiscountType(req.DiscountType), req.DiscountValue, exclusions)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save promotion: %w", err)
	}

	s.logger.Info("promotion created",
		zap.String("promotion_id", p.ID().String()),
		zap.String("discount_type", string(p.DiscountType())),
		zap.Float64("discount_value", p.DiscountValue()),
	)
	return toPromotionDTO(p), nil
}

// List returns all promotions in selection order.
func (s *PromoService) List(ctx context.Context) ([]*PromotionDTO, error) {
	promos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*PromotionDTO, len(promos))
	for i, p := range promos {
		dtos[i] = toPromotionDTO(p)
	}
	return dtos, nil
}

// SetStatus activates, deactivates or expires a promotion.
func (s *PromoService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*PromotionDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := p.SetStatus(promoDomain.Status(status))
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		s.logger.Info("promotion status changed",
			zap.String("promotion_id", p.ID().String()),
			zap.String("status", string(p.Status())),
		)
	}
	return toPromotionDTO(p), nil
}
