package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// PromotionStore is an in-memory promo.Repository.
type PromotionStore struct {
	mu     sync.RWMutex
	promos map[uuid.UUID]*promo.Promotion
}

// NewPromotionStore creates an empty store.
func NewPromotionStore() *PromotionStore {
	return &PromotionStore{promos: make(map[uuid.UUID]*promo.Promotion)}
}

func clonePromotion(p *promo.Promotion) *promo.Promotion {
	return promo.Reconstruct(p.ID(), p.Title(), p.StartDate(), p.EndDate(), p.Status(),
		p.DiscountType(), p.DiscountValue(), p.Exclusions(), p.CreatedAt(), p.UpdatedAt())
}

func (s *PromotionStore) Save(_ context.Context, p *promo.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.promos[p.ID()]; exists {
		return apperror.NewConflictError("promotion " + p.ID().String() + " already exists")
	}
	s.promos[p.ID()] = clonePromotion(p)
	return nil
}

func (s *PromotionStore) Update(_ context.Context, p *promo.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.promos[p.ID()]; !exists {
		return apperror.NewNotFoundError("Promotion", p.ID().String())
	}
	s.promos[p.ID()] = clonePromotion(p)
	return nil
}

func (s *PromotionStore) FindByID(_ context.Context, id uuid.UUID) (*promo.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.promos[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Promotion", id.String())
	}
	return clonePromotion(p), nil
}

// List returns every promotion in selection order.
func (s *PromotionStore) List(_ context.Context) ([]*promo.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*promo.Promotion, 0, len(s.promos))
	for _, p := range s.promos {
		out = append(out, clonePromotion(p))
	}
	promo.SortForSelection(out)
	return out, nil
}

func (s *PromotionStore) FindApplicable(ctx context.Context, date timerange.Date, kind catalog.Kind) (*promo.Promotion, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return promo.FirstApplicable(all, date, kind), nil
}
