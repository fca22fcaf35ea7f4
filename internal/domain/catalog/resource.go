package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// Kind distinguishes facilities from apparel. Both book the same way.
type Kind string

const (
	KindFacility Kind = "facility"
	KindApparel  Kind = "apparel"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindFacility || k == KindApparel
}

// Resource is a bookable facility or apparel item with its hourly rate catalog.
type Resource struct {
	id          uuid.UUID
	kind        Kind
	name        string
	sport       string
	timeSlots   []TimeSlot
	convertible bool
	otherSports []string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewResource validates and creates a resource.
func NewResource(kind Kind, name, sport string, slots []TimeSlot, convertible bool, otherSports []string) (*Resource, error) {
	if !kind.IsValid() {
		return nil, apperror.NewValidationError("kind must be facility or apparel")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError("name is required")
	}
	if err := Validate(slots); err != nil {
		return nil, err
	}
	if convertible && len(otherSports) == 0 {
		return nil, apperror.New(apperror.ErrInvalidConversion, "a convertible resource must list other sports")
	}
	if !convertible && len(otherSports) > 0 {
		return nil, apperror.New(apperror.ErrInvalidConversion, "other sports require the resource to be convertible")
	}

	now := time.Now().UTC()
	return &Resource{
		id:          uuid.New(),
		kind:        kind,
		name:        name,
		sport:       strings.TrimSpace(sport),
		timeSlots:   slices.Clone(slots),
		convertible: convertible,
		otherSports: slices.Clone(otherSports),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstitute rebuilds a Resource from persisted data.
func Reconstitute(id uuid.UUID, kind Kind, name, sport string, slots []TimeSlot, convertible bool, otherSports []string, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:          id,
		kind:        kind,
		name:        name,
		sport:       sport,
		timeSlots:   slots,
		convertible: convertible,
		otherSports: otherSports,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Resource) ID() uuid.UUID         { return r.id }
func (r *Resource) Kind() Kind            { return r.kind }
func (r *Resource) Name() string          { return r.name }
func (r *Resource) Sport() string         { return r.sport }
func (r *Resource) TimeSlots() []TimeSlot { return slices.Clone(r.timeSlots) }
func (r *Resource) Convertible() bool     { return r.convertible }
func (r *Resource) OtherSports() []string { return slices.Clone(r.otherSports) }
func (r *Resource) CreatedAt() time.Time  { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time  { return r.updatedAt }

// SupportsConversionTo reports whether the resource can be booked as sport.
func (r *Resource) SupportsConversionTo(sport string) bool {
	return r.convertible && slices.Contains(r.otherSports, sport)
}
