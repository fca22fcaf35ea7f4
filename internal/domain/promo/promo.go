package promo

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// DiscountType represents the type of discount.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeAmount     DiscountType = "amount"
)

// Status represents whether a promotion may be applied.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusExpired
}

// Promotion is the aggregate root for time-bounded booking discounts.
type Promotion struct {
	id            uuid.UUID
	title         string
	startDate     timerange.Date
	endDate       timerange.Date
	status        Status
	discountType  DiscountType
	discountValue float64 // percentage (0-100) or amount in minor units
	exclusions    []catalog.Kind
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPromotion creates an active promotion valid from startDate to endDate inclusive.
func NewPromotion(title string, startDate, endDate timerange.Date, discountType DiscountType, discountValue float64, exclusions []catalog.Kind) (*Promotion, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.NewValidationError("promotion title is required")
	}
	if discountType != DiscountTypePercentage && discountType != DiscountTypeAmount {
		return nil, apperror.NewValidationError("invalid discount type: " + string(discountType))
	}
	if discountValue < 0 || math.IsNaN(discountValue) || math.IsInf(discountValue, 0) {
		return nil, apperror.NewValidationError("discount value must be a non-negative number")
	}
	if discountType == DiscountTypePercentage && discountValue > 100 {
		return nil, apperror.NewValidationError("percentage discount cannot exceed 100")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, apperror.NewValidationError("start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, apperror.NewValidationError("end date must not be before start date")
	}
	for _, k := range exclusions {
		if !k.IsValid() {
			return nil, apperror.NewValidationError("unknown exclusion: " + string(k))
		}
	}

	now := time.Now().UTC()
	return &Promotion{
		id:            uuid.New(),
		title:         title,
		startDate:     startDate,
		endDate:       endDate,
		status:        StatusActive,
		discountType:  discountType,
		discountValue: discountValue,
		exclusions:    slices.Clone(exclusions),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a Promotion from persistence.
func Reconstruct(id uuid.UUID, title string, startDate, endDate timerange.Date, status Status, discountType DiscountType, discountValue float64, exclusions []catalog.Kind, createdAt, updatedAt time.Time) *Promotion {
	return &Promotion{
		id: id, title: title, startDate: startDate, endDate: endDate, status: status,
		discountType: discountType, discountValue: discountValue, exclusions: exclusions,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// IsApplicable reports whether the promotion discounts a booking of kind on date.
func (p *Promotion) IsApplicable(date timerange.Date, kind catalog.Kind) bool {
	if p.status != StatusActive {
		return false
	}
	if !date.Between(p.startDate, p.endDate) {
		return false
	}
	return !slices.Contains(p.exclusions, kind)
}

// Apply discounts total once and never goes below zero.
// Percentage discounts round half away from zero to the minor unit.
func (p *Promotion) Apply(total int64) int64 {
	var discounted int64
	switch p.discountType {
	case DiscountTypePercentage:
		discounted = total - int64(math.Round(float64(total)*p.discountValue/100))
	case DiscountTypeAmount:
		discounted = total - int64(math.Round(p.discountValue))
	default:
		discounted = total
	}
	if discounted < 0 {
		return 0
	}
	return min(discounted, total)
}

// SetStatus changes the promotion status. It reports whether anything changed.
func (p *Promotion) SetStatus(s Status) (bool, error) {
	if !s.IsValid() {
		return false, apperror.New(apperror.ErrInvalidStatus, "unknown promotion status %q", s)
	}
	if s == p.status {
		return false, nil
	}
	p.status = s
	p.updatedAt = time.Now().UTC()
	return true, nil
}

// Getters.
func (p *Promotion) ID() uuid.UUID              { return p.id }
func (p *Promotion) Title() string              { return p.title }
func (p *Promotion) StartDate() timerange.Date  { return p.startDate }
func (p *Promotion) EndDate() timerange.Date    { return p.endDate }
func (p *Promotion) Status() Status             { return p.status }
func (p *Promotion) DiscountType() DiscountType { return p.discountType }
func (p *Promotion) DiscountValue() float64     { return p.discountValue }
func (p *Promotion) Exclusions() []catalog.Kind { return slices.Clone(p.exclusions) }
func (p *Promotion) CreatedAt() time.Time       { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time       { return p.updatedAt }

// SortForSelection orders promotions by start date, then creation time, then id.
func SortForSelection(promos []*Promotion) {
	sort.SliceStable(promos, func(i, j int) bool {
		a, b := promos[i], promos[j]
		if !a.startDate.Equal(b.startDate) {
			return a.startDate.Before(b.startDate)
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.id.String() < b.id.String()
	})
}

// FirstApplicable returns the promotion that wins for a booking of kind on
// date, or nil. At most one promotion is ever applied.
func FirstApplicable(promos []*Promotion, date timerange.Date, kind catalog.Kind) *Promotion {
	candidates := make([]*Promotion, 0, len(promos))
	for _, p := range promos {
		if p != nil && p.IsApplicable(date, kind) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	SortForSelection(candidates)
	return candidates[0]
}
