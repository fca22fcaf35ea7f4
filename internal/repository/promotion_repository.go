package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	promoDomain "github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// PromotionModel is the GORM persistence model for the promotions table.
type PromotionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string    `gorm:"type:varchar(255);not null"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_promotions_window"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_promotions_window"`
	Status        string    `gorm:"type:varchar(20);not null;default:'active'"`
	DiscountType  string    `gorm:"type:varchar(20);not null"`
	DiscountValue float64   `gorm:"type:numeric(12,2);not null"`
	Exclusions    []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt     time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (PromotionModel) TableName() string {
	return "promotions"
}

// PromotionRepositoryImpl is the GORM-based implementation of promo.Repository.
type PromotionRepositoryImpl struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new GORM-based promotion repository.
func NewPromotionRepository(db *gorm.DB) *PromotionRepositoryImpl {
	return &PromotionRepositoryImpl{db: db}
}

func (r *PromotionRepositoryImpl) Save(ctx context.Context, p *promoDomain.Promotion) error {
	return translate(r.db.WithContext(ctx).Create(promotionToModel(p)).Error, "Promotion", p.ID().String())
}

func (r *PromotionRepositoryImpl) Update(ctx context.Context, p *promoDomain.Promotion) error {
	result := r.db.WithContext(ctx).
		Model(&PromotionModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]any{"status": string(p.Status()), "updated_at": p.UpdatedAt()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Promotion", p.ID().String())
	}
	return nil
}

func (r *PromotionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*promoDomain.Promotion, error) {
	var model PromotionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "Promotion", id.String())
	}
	return promotionToDomain(&model), nil
}

// List returns every promotion in selection order.
func (r *PromotionRepositoryImpl) List(ctx context.Context) ([]*promoDomain.Promotion, error) {
	var models []PromotionModel
	if err := r.db.WithContext(ctx).Order("start_date ASC, created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return promotionsToDomain(models), nil
}

// FindApplicable narrows by status and window in SQL and leaves the kind
// exclusion and tie-breaking to the domain.
func (r *PromotionRepositoryImpl) FindApplicable(ctx context.Context, date timerange.Date, kind catalog.Kind) (*promoDomain.Promotion, error) {
	var models []PromotionModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", string(promoDomain.StatusActive), date.Time(), date.Time()).
		Order("start_date ASC, created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return promoDomain.FirstApplicable(promotionsToDomain(models), date, kind), nil
}

func promotionsToDomain(models []PromotionModel) []*promoDomain.Promotion {
	out := make([]*promoDomain.Promotion, len(models))
	for i := range models {
		out[i] = promotionToDomain(&models[i])
	}
	return out
}

func promotionToDomain(m *PromotionModel) *promoDomain.Promotion {
	exclusions := make([]catalog.Kind, len(m.Exclusions))
	for i, e := range m.Exclusions {
		exclusions[i] = catalog.Kind(e)
	}
	return promoDomain.Reconstruct(m.ID, m.Title, timerange.DateOf(m.StartDate), timerange.DateOf(m.EndDate),
		promoDomain.Status(m.Status), promoDomain.DiscountType(m.DiscountType), m.DiscountValue, exclusions,
		m.CreatedAt, m.UpdatedAt)
}

func promotionToModel(p *promoDomain.Promotion) *PromotionModel {
	excl := p.Exclusions()
	exclusions := make([]string, len(excl))
	for i, k := range excl {
		exclusions[i] = string(k)
	}
	return &PromotionModel{
		ID:            p.ID(),
		Title:         p.Title(),
		StartDate:     p.StartDate().Time(),
		EndDate:       p.EndDate().Time(),
		Status:        string(p.Status()),
		DiscountType:  string(p.DiscountType()),
		DiscountValue: p.DiscountValue(),
		Exclusions:    exclusions,
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
