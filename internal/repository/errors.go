package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// translate maps driver-level failures onto the domain taxonomy. The
// connection is opened with TranslateError so unique violations arrive as
// gorm.ErrDuplicatedKey.
func translate(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NewNotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflictError(entity + " " + id + " conflicts with an existing row")
	}
	return err
}

// Migrate creates or updates every table this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ResourceModel{}, &ReservationModel{}, &PromotionModel{})
}
