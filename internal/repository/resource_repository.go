package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
)

// TimeSlotModel is the JSON shape of one tier inside resources.time_slots.
type TimeSlotModel struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Price int64 `json:"price"`
}

// ResourceModel is the GORM persistence model for the resources table.
type ResourceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Kind        string          `gorm:"type:varchar(20);not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Sport       string          `gorm:"type:varchar(100)"`
	TimeSlots   []TimeSlotModel `gorm:"type:jsonb;serializer:json;not null"`
	Convertible bool            `gorm:"not null;default:false"`
	OtherSports []string        `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time       `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (ResourceModel) TableName() string {
	return "resources"
}

// ResourceRepositoryImpl is the GORM-based implementation of catalog.ResourceRepository.
type ResourceRepositoryImpl struct {
	db *gorm.DB
}

// NewResourceRepository creates a new GORM-based resource repository.
func NewResourceRepository(db *gorm.DB) *ResourceRepositoryImpl {
	return &ResourceRepositoryImpl{db: db}
}

// FindByID retrieves a resource by its unique ID.
func (r *ResourceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Resource, error) {
	var model ResourceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "Resource", id.String())
	}
	return resourceToDomain(&model), nil
}

// Save inserts or replaces a resource.
func (r *ResourceRepositoryImpl) Save(ctx context.Context, res *catalog.Resource) error {
	model := resourceToModel(res)
	return translate(r.db.WithContext(ctx).Save(model).Error, "Resource", res.ID().String())
}

func resourceToDomain(m *ResourceModel) *catalog.Resource {
	slots := make([]catalog.TimeSlot, len(m.TimeSlots))
	for i, s := range m.TimeSlots {
		slots[i] = catalog.TimeSlot{StartHour: s.Start, EndHour: s.End, Price: s.Price}
	}
	return catalog.Reconstitute(m.ID, catalog.Kind(m.Kind), m.Name, m.Sport, slots, m.Convertible, m.OtherSports, m.CreatedAt, m.UpdatedAt)
}

func resourceToModel(res *catalog.Resource) *ResourceModel {
	slots := res.TimeSlots()
	models := make([]TimeSlotModel, len(slots))
	for i, s := range slots {
		models[i] = TimeSlotModel{Start: s.StartHour, End: s.EndHour, Price: s.Price}
	}
	return &ResourceModel{
		ID:          res.ID(),
		Kind:        string(res.Kind()),
		Name:        res.Name(),
		Sport:       res.Sport(),
		TimeSlots:   models,
		Convertible: res.Convertible(),
		OtherSports: res.OtherSports(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}
}
