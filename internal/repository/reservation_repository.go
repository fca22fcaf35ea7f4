package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// ReservationModel is the GORM persistence model for the reservations table.
// idx_reservations_active_slot only rejects two active reservations that start
// at the same minute on the same resource and day. Overlaps with different
// starts are prevented by the resource row lock in WithinResourceLock plus the
// overlap query in Insert, not by the index.
type ReservationModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ResourceID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_reservations_day;uniqueIndex:idx_reservations_active_slot,where:status <> 'cancelled'"`
	ResourceKind    string     `gorm:"type:varchar(20);not null"`
	Date            time.Time  `gorm:"type:date;not null;index:idx_reservations_day;uniqueIndex:idx_reservations_active_slot"`
	StartMinute     int        `gorm:"not null;uniqueIndex:idx_reservations_active_slot"`
	EndMinute       int        `gorm:"not null"`
	Price           int64      `gorm:"not null"`
	BasePrice       int64      `gorm:"not null"`
	PromotionID     *uuid.UUID `gorm:"type:uuid"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"`
	ConvertTo       bool       `gorm:"not null;default:false"`
	ConvertedTo     string     `gorm:"type:varchar(100)"`
	PaymentIntentID *string    `gorm:"type:varchar(255);uniqueIndex"`
	ContactName     string     `gorm:"type:varchar(255);not null"`
	ContactEmail    string     `gorm:"type:varchar(255);not null"`
	ContactPhone    string     `gorm:"type:varchar(50);not null"`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt       time.Time  `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (ReservationModel) TableName() string {
	return "reservations"
}

// ReservationRepositoryImpl is the GORM-based implementation of reservation.Repository.
type ReservationRepositoryImpl struct {
	db *gorm.DB
}

// NewReservationRepository creates a new GORM-based reservation repository.
func NewReservationRepository(db *gorm.DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{db: db}
}

// WithinResourceLock runs fn in one transaction holding SELECT ... FOR UPDATE
// on the resource row. Concurrent bookings for the resource queue behind it.
func (r *ReservationRepositoryImpl) WithinResourceLock(ctx context.Context, resourceID uuid.UUID, date timerange.Date, fn func(ctx context.Context, repo reservation.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked ResourceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", resourceID).
			Take(&locked).Error
		if err != nil {
			return translate(err, "Resource", resourceID.String())
		}
		return fn(ctx, &ReservationRepositoryImpl{db: tx})
	})
}

// ListActive returns the day's non-cancelled reservations ordered by start.
func (r *ReservationRepositoryImpl) ListActive(ctx context.Context, resourceID uuid.UUID, date timerange.Date) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND date = ? AND status <> ?", resourceID, date.Time(), string(reservation.StatusCancelled)).
		Order("start_minute ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return reservationsToDomain(models), nil
}

// ListForDay returns every reservation of the day ordered by start.
func (r *ReservationRepositoryImpl) ListForDay(ctx context.Context, resourceID uuid.UUID, date timerange.Date) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND date = ?", resourceID, date.Time()).
		Order("start_minute ASC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return reservationsToDomain(models), nil
}

// Insert persists a new reservation after an overlap guard query. Run it inside
// WithinResourceLock; outside the lock the index only catches same-start races.
func (r *ReservationRepositoryImpl) Insert(ctx context.Context, res *reservation.Reservation) error {
	model := reservationToModel(res)
	db := r.db.WithContext(ctx)

	if res.IsActive() {
		var blocker ReservationModel
		err := db.Model(&ReservationModel{}).
			Where("resource_id = ? AND date = ? AND status <> ?", model.ResourceID, model.Date, string(reservation.StatusCancelled)).
			Where("start_minute < ? AND end_minute > ?", model.EndMinute, model.StartMinute).
			Take(&blocker).Error
		if err == nil {
			return apperror.NewConflictError("interval " + res.Interval().String() + " overlaps reservation " + blocker.ID.String())
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return translate(db.Create(model).Error, "Reservation", res.ID().String())
}

// Update persists status and intent changes with optimistic locking.
func (r *ReservationRepositoryImpl) Update(ctx context.Context, res *reservation.Reservation) error {
	model := reservationToModel(res)
	previousVersion := res.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]any{
			"status":            model.Status,
			"payment_intent_id": model.PaymentIntentID,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return translate(result.Error, "Reservation", res.ID().String())
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperror.NewNotFoundError("Reservation", res.ID().String())
		}
		return apperror.NewConflictError("reservation was modified by another transaction")
	}

	return nil
}

// FindByID retrieves a reservation by its unique ID.
func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "Reservation", id.String())
	}
	return reservationToDomain(&model), nil
}

// FindByPaymentIntent retrieves the reservation bound to a payment intent.
func (r *ReservationRepositoryImpl) FindByPaymentIntent(ctx context.Context, intentID string) (*reservation.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("payment_intent_id = ?", intentID).First(&model).Error; err != nil {
		return nil, translate(err, "Reservation with payment intent", intentID)
	}
	return reservationToDomain(&model), nil
}

func reservationsToDomain(models []ReservationModel) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(models))
	for i := range models {
		out[i] = reservationToDomain(&models[i])
	}
	return out
}

// reservationToDomain maps a ReservationModel to the domain Reservation aggregate.
func reservationToDomain(m *ReservationModel) *reservation.Reservation {
	var intentID string
	if m.PaymentIntentID != nil {
		intentID = *m.PaymentIntentID
	}
	return reservation.Reconstitute(
		m.ID,
		m.ResourceID,
		catalog.Kind(m.ResourceKind),
		timerange.DateOf(m.Date),
		timerange.Interval{Start: m.StartMinute, End: m.EndMinute},
		m.Price,
		m.BasePrice,
		m.PromotionID,
		reservation.Status(m.Status),
		m.ConvertTo,
		m.ConvertedTo,
		intentID,
		reservation.Contact{Name: m.ContactName, Email: m.ContactEmail, Phone: m.ContactPhone},
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// reservationToModel maps a domain Reservation aggregate to a ReservationModel for persistence.
func reservationToModel(res *reservation.Reservation) *ReservationModel {
	var intentID *string
	if id := res.PaymentIntentID(); id != "" {
		intentID = &id
	}
	c := res.Contact()
	return &ReservationModel{
		ID:              res.ID(),
		ResourceID:      res.ResourceID(),
		ResourceKind:    string(res.ResourceKind()),
		Date:            res.Date().Time(),
		StartMinute:     res.Interval().Start,
		EndMinute:       res.Interval().End,
		Price:           res.Price(),
		BasePrice:       res.BasePrice(),
		PromotionID:     res.PromotionID(),
		Status:          string(res.Status()),
		ConvertTo:       res.ConvertTo(),
		ConvertedTo:     res.ConvertedTo(),
		PaymentIntentID: intentID,
		ContactName:     c.Name,
		ContactEmail:    c.Email,
		ContactPhone:    c.Phone,
		Version:         res.Version(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
}
