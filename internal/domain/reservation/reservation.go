package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// Status represents the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Contact is the customer payload carried by a reservation.
type Contact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// Reservation is the aggregate root for a booked interval on one resource and day.
type Reservation struct {
	id              uuid.UUID
	resourceID      uuid.UUID
	resourceKind    catalog.Kind
	date            timerange.Date
	interval        timerange.Interval
	price           int64
	basePrice       int64
	promotionID     *uuid.UUID
	status          Status
	convertTo       bool
	convertedTo     string
	paymentIntentID string
	contact         Contact
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewParams carries everything needed to open a pending reservation.
type NewParams struct {
	Resource    *catalog.Resource
	Date        timerange.Date
	Interval    timerange.Interval
	Price       int64
	BasePrice   int64
	PromotionID *uuid.UUID
	Contact     Contact
	ConvertTo   bool
	ConvertedTo string
}

// New validates p and returns a pending reservation holding a price snapshot.
func New(p NewParams) (*Reservation, error) {
	if p.Resource == nil {
		return nil, apperror.NewValidationError("resource is required")
	}
	if p.Date.IsZero() {
		return nil, apperror.NewValidationError("date is required")
	}
	if err := ValidateInterval(p.Interval); err != nil {
		return nil, err
	}
	if err := ValidateConversion(p.Resource, p.ConvertTo, p.ConvertedTo); err != nil {
		return nil, err
	}
	if err := validateContact(p.Contact); err != nil {
		return nil, err
	}
	basePrice := p.BasePrice
	if basePrice == 0 {
		basePrice = p.Price
	}
	if p.Price < 0 || basePrice < p.Price {
		return nil, apperror.NewValidationError("price must be between zero and the base price")
	}

	now := time.Now().UTC()
	return &Reservation{
		id:           uuid.New(),
		resourceID:   p.Resource.ID(),
		resourceKind: p.Resource.Kind(),
		date:         p.Date,
		interval:     p.Interval,
		price:        p.Price,
		basePrice:    basePrice,
		promotionID:  p.PromotionID,
		status:       StatusPending,
		convertTo:    p.ConvertTo,
		convertedTo:  strings.TrimSpace(p.ConvertedTo),
		contact:      p.Contact,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ValidateInterval checks that iv is non-empty, on the hour and inside the bookable day.
func ValidateInterval(iv timerange.Interval) error {
	if iv.Start >= iv.End {
		return apperror.New(apperror.ErrInvalidInterval, "start %s must be before end %s",
			timerange.FormatClock(iv.Start), timerange.FormatClock(iv.End))
	}
	if !catalog.BookableDay().ContainsInterval(iv) {
		return apperror.New(apperror.ErrInvalidInterval, "%s is outside bookable hours %s", iv, catalog.BookableDay())
	}
	if !iv.IsHourAligned() {
		return apperror.New(apperror.ErrInvalidInterval, "%s must start and end on the hour", iv)
	}
	return nil
}

// ValidateConversion checks the convertTo/convertedTo pairing against the resource.
func ValidateConversion(r *catalog.Resource, convertTo bool, convertedTo string) error {
	convertedTo = strings.TrimSpace(convertedTo)
	if !convertTo {
		if convertedTo != "" {
			return apperror.New(apperror.ErrInvalidConversion, "convertedTo %q given without convertTo", convertedTo)
		}
		return nil
	}
	if convertedTo == "" {
		return apperror.New(apperror.ErrInvalidConversion, "convertedTo is required when convertTo is set")
	}
	if !r.SupportsConversionTo(convertedTo) {
		return apperror.New(apperror.ErrInvalidConversion, "resource %s cannot be converted to %q", r.ID(), convertedTo)
	}
	return nil
}

var contactValidator = validator.New()

// validateContact checks c against its `validate` tags after trimming, so
// whitespace-only values count as missing.
func validateContact(c Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)

	err := contactValidator.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.NewValidationError(err.Error())
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "email" {
		return apperror.NewValidationError("contact email must be a valid email address")
	}
	return apperror.NewValidationError("contact " + field + " is required")
}

// --- Getters ---

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) ResourceID() uuid.UUID        { return r.resourceID }
func (r *Reservation) ResourceKind() catalog.Kind   { return r.resourceKind }
func (r *Reservation) Date() timerange.Date         { return r.date }
func (r *Reservation) Interval() timerange.Interval { return r.interval }
func (r *Reservation) Price() int64                 { return r.price }
func (r *Reservation) BasePrice() int64             { return r.basePrice }
func (r *Reservation) PromotionID() *uuid.UUID      { return r.promotionID }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) ConvertTo() bool              { return r.convertTo }
func (r *Reservation) ConvertedTo() string          { return r.convertedTo }
func (r *Reservation) PaymentIntentID() string      { return r.paymentIntentID }
func (r *Reservation) Contact() Contact             { return r.contact }
func (r *Reservation) Version() int64               { return r.version }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }

// IsActive reports whether the reservation still occupies its interval.
func (r *Reservation) IsActive() bool {
	return r.status != StatusCancelled
}

// --- State transitions ---

// SetStatus moves the reservation to next. It returns changed=false without
// error when next equals the current status, including cancelled to cancelled.
// Nothing leaves cancelled, and a confirmed reservation cannot return to pending.
func (r *Reservation) SetStatus(next Status) (bool, error) {
	if !next.IsValid() {
		return false, apperror.New(apperror.ErrInvalidStatus, "unknown status %q", next)
	}
	if next == r.status {
		return false, nil
	}
	if r.status == StatusCancelled || (r.status == StatusConfirmed && next == StatusPending) {
		return false, apperror.NewInvalidTransitionError(string(r.status), string(next))
	}

	r.status = next
	r.updatedAt = time.Now().UTC()
	return true, nil
}

// Confirm is SetStatus(StatusConfirmed).
func (r *Reservation) Confirm() (bool, error) {
	return r.SetStatus(StatusConfirmed)
}

// Cancel is SetStatus(StatusCancelled).
func (r *Reservation) Cancel() (bool, error) {
	return r.SetStatus(StatusCancelled)
}

// AttachPaymentIntent correlates the reservation with an external payment intent.
// Re-attaching the same id is a no-op; a different id while one is bound is a conflict.
func (r *Reservation) AttachPaymentIntent(intentID string) (bool, error) {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return false, apperror.NewValidationError("payment intent id is required")
	}
	if r.paymentIntentID == intentID {
		return false, nil
	}
	if r.status != StatusPending {
		return false, apperror.New(apperror.ErrInvalidTransition, "cannot attach a payment intent to a %s reservation", r.status)
	}
	if r.paymentIntentID != "" {
		return false, apperror.NewConflictError("reservation " + r.id.String() + " is already bound to intent " + r.paymentIntentID)
	}

	r.paymentIntentID = intentID
	r.updatedAt = time.Now().UTC()
	return true, nil
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}

// --- Reconstitution ---

// Reconstitute rebuilds a Reservation from persisted data.
func Reconstitute(
	id, resourceID uuid.UUID,
	resourceKind catalog.Kind,
	date timerange.Date,
	interval timerange.Interval,
	price, basePrice int64,
	promotionID *uuid.UUID,
	status Status,
	convertTo bool,
	convertedTo, paymentIntentID string,
	contact Contact,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		resourceID:      resourceID,
		resourceKind:    resourceKind,
		date:            date,
		interval:        interval,
		price:           price,
		basePrice:       basePrice,
		promotionID:     promotionID,
		status:          status,
		convertTo:       convertTo,
		convertedTo:     convertedTo,
		paymentIntentID: paymentIntentID,
		contact:         contact,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Clone returns an independent copy, used by in-process stores.
func (r *Reservation) Clone() *Reservation {
	c := *r
	if r.promotionID != nil {
		id := *r.promotionID
		c.promotionID = &id
	}
	return &c
}
