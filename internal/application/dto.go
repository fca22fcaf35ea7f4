package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/pricing"
	"github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
)

// TimeSlotDTO is one hourly tier, hours in [6, 23].
type TimeSlotDTO struct {
	Start int   `json:"start" binding:"gte=0,lte=24"`
	End   int   `json:"end" binding:"gte=0,lte=24"`
	Price int64 `json:"price"`
}

// CreateResourceRequest defines a facility or apparel item.
type CreateResourceRequest struct {
	Kind        string        `json:"kind" binding:"required,oneof=facility apparel"`
	Name        string        `json:"name" binding:"required"`
	Sport       string        `json:"sport"`
	TimeSlots   []TimeSlotDTO `json:"time_slots" binding:"dive"`
	Convertible bool          `json:"convertible"`
	OtherSports []string      `json:"other_sports"`
}

// ResourceDTO is the API response representation of a resource.
type ResourceDTO struct {
	ID          uuid.UUID     `json:"id"`
	Kind        string        `json:"kind"`
	Name        string        `json:"name"`
	Sport       string        `json:"sport"`
	TimeSlots   []TimeSlotDTO `json:"time_slots"`
	Convertible bool          `json:"convertible"`
	OtherSports []string      `json:"other_sports"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ContactDTO is the customer contact attached to a reservation.
type ContactDTO struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// QuoteRequest asks for the price of an interval without booking it.
type QuoteRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
	EndTime    string    `json:"end_time" binding:"required"`
}

// CreateReservationRequest books one interval on one resource.
type CreateReservationRequest struct {
	ResourceID  uuid.UUID  `json:"resource_id" binding:"required"`
	Date        string     `json:"date" binding:"required"`
	StartTime   string     `json:"start_time" binding:"required"`
	EndTime     string     `json:"end_time" binding:"required"`
	Contact     ContactDTO `json:"contact"`
	ConvertTo   bool       `json:"convert_to"`
	ConvertedTo string     `json:"converted_to"`
}

// UpdateStatusRequest changes a reservation's status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BindPaymentIntentRequest correlates an externally created intent.
type BindPaymentIntentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// QuoteDTO is the priced breakdown returned before booking.
type QuoteDTO struct {
	Base        int64      `json:"base"`
	Discount    int64      `json:"discount"`
	Total       int64      `json:"total"`
	Hours       int        `json:"hours"`
	PromotionID *uuid.UUID `json:"promotion_id,omitempty"`
	Currency    string     `json:"currency"`
}

// ReservationDTO is the API response representation of a reservation.
type ReservationDTO struct {
	ID              uuid.UUID  `json:"id"`
	ResourceID      uuid.UUID  `json:"resource_id"`
	ResourceKind    string     `json:"resource_kind"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Price           int64      `json:"price"`
	BasePrice       int64      `json:"base_price"`
	PromotionID     *uuid.UUID `json:"promotion_id,omitempty"`
	Status          string     `json:"status"`
	ConvertTo       bool       `json:"convert_to"`
	ConvertedTo     string     `json:"converted_to,omitempty"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`
	Contact         ContactDTO `json:"contact"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IntervalDTO is a free window as clock strings.
type IntervalDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlotsDTO lists a resource's free windows for one day.
type FreeSlotsDTO struct {
	ResourceID uuid.UUID     `json:"resource_id"`
	Date       string        `json:"date"`
	Slots      []IntervalDTO `json:"slots"`
}

// PaymentIntentDTO is returned when a payment flow is initiated.
type PaymentIntentDTO struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	ClientSecret    string    `json:"client_secret,omitempty"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
}

// PaymentWebhookRequest is the gateway's success callback.
type PaymentWebhookRequest struct {
	Type            string `json:"type" binding:"required"`
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	Status          string `json:"status"`
}

// PaymentOutcomeDTO reports what a success signal did.
type PaymentOutcomeDTO struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Outcome         string `json:"outcome"`
}

// CreatePromotionRequest holds data to create a promotion.
type CreatePromotionRequest struct {
	Title         string   `json:"title" binding:"required"`
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
	DiscountType  string   `json:"discount_type" binding:"required,oneof=percentage amount"`
	DiscountValue float64  `json:"discount_value" binding:"gte=0"`
	Exclusions    []string `json:"exclusions" binding:"dive,oneof=facility apparel"`
}

// PromotionDTO is the API response representation of a promotion.
type PromotionDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	Exclusions    []string  `json:"exclusions"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResourceDTO(r *catalog.Resource) *ResourceDTO {
	slots := r.TimeSlots()
	dtoSlots := make([]TimeSlotDTO, len(slots))
	for i, s := range slots {
		dtoSlots[i] = TimeSlotDTO{Start: s.StartHour, End: s.EndHour, Price: s.Price}
	}
	return &ResourceDTO{
		ID:          r.ID(),
		Kind:        string(r.Kind()),
		Name:        r.Name(),
		Sport:       r.Sport(),
		TimeSlots:   dtoSlots,
		Convertible: r.Convertible(),
		OtherSports: r.OtherSports(),
		CreatedAt:   r.CreatedAt(),
	}
}

func toReservationDTO(r *reservation.Reservation) *ReservationDTO {
	c := r.Contact()
	return &ReservationDTO{
		ID:              r.ID(),
		ResourceID:      r.ResourceID(),
		ResourceKind:    string(r.ResourceKind()),
		Date:            r.Date().String(),
		StartTime:       timerange.FormatClock(r.Interval().Start),
		EndTime:         timerange.FormatClock(r.Interval().End),
		Price:           r.Price(),
		BasePrice:       r.BasePrice(),
		PromotionID:     r.PromotionID(),
		Status:          string(r.Status()),
		ConvertTo:       r.ConvertTo(),
		ConvertedTo:     r.ConvertedTo(),
		PaymentIntentID: r.PaymentIntentID(),
		Contact:         ContactDTO{Name: c.Name, Email: c.Email, Phone: c.Phone},
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func toQuoteDTO(q pricing.Quote, currency string) *QuoteDTO {
	return &QuoteDTO{
		Base:        q.Base,
		Discount:    q.Discount,
		Total:       q.Total,
		Hours:       q.Hours,
		PromotionID: q.PromotionID,
		Currency:    currency,
	}
}

func toPromotionDTO(p *promo.Promotion) *PromotionDTO {
	excl := p.Exclusions()
	exclusions := make([]string, len(excl))
	for i, k := range excl {
		exclusions[i] = string(k)
	}
	return &PromotionDTO{
		ID:            p.ID(),
		Title:         p.Title(),
		StartDate:     p.StartDate().String(),
		EndDate:       p.EndDate().String(),
		Status:        string(p.Status()),
		DiscountType:  string(p.DiscountType()),
		DiscountValue: p.DiscountValue(),
		Exclusions:    exclusions,
		CreatedAt:     p.CreatedAt(),
	}
}
