package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/domain/pricing"
	"github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// BookingService is the application service that orchestrates reservation use cases.
type BookingService struct {
	resources    catalog.ResourceRepository
	reservations reservation.Repository
	promos       promo.Repository
	publisher    contracts.Publisher
	validate     *requestValidator
	day          timerange.Interval
	currency     string
	logger       *zap.Logger
}

// NewBookingService creates a new BookingService. day is the operating window
// free slots are computed over.
func NewBookingService(
	resources catalog.ResourceRepository,
	reservations reservation.Repository,
	promos promo.Repository,
	publisher contracts.Publisher,
	day timerange.Interval,
	currency string,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		resources:    resources,
		reservations: reservations,
		promos:       promos,
		publisher:    publisher,
		validate:     newRequestValidator(),
		day:          day,
		currency:     currency,
		logger:       logger,
	}
}

// bookingInput is a request after parsing, before any lookups.
type bookingInput struct {
	date     timerange.Date
	interval timerange.Interval
}

func parseBookingInput(date, start, end string) (bookingInput, error) {
	d, err := timerange.ParseDate(date)
	if err != nil {
		return bookingInput{}, err
	}
	iv, err := timerange.Parse(start, end)
	if err != nil {
		return bookingInput{}, err
	}
	if err := reservation.ValidateInterval(iv); err != nil {
		return bookingInput{}, err
	}
	return bookingInput{date: d, interval: iv}, nil
}

// loadBookableResource fetches the resource and re-validates its catalog.
func (s *BookingService) loadBookableResource(ctx context.Context, id uuid.UUID) (*catalog.Resource, error) {
	res, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(res.TimeSlots()); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *BookingService) quote(ctx context.Context, res *catalog.Resource, in bookingInput) (pricing.Quote, error) {
	p, err := s.promos.FindApplicable(ctx, in.date, res.Kind())
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("failed to look up promotion: %w", err)
	}
	return pricing.Price(res.TimeSlots(), in.interval, p, in.date, res.Kind())
}

// Quote prices an interval without booking it.
func (s *BookingService) Quote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	in, err := parseBookingInput(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	res, err := s.loadBookableResource(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	q, err := s.quote(ctx, res, in)
	if err != nil {
		return nil, err
	}
	return toQuoteDTO(q, s.currency), nil
}

// Create books an interval as a pending reservation. Validation runs first;
// the conflict check, pricing and insert then run under the resource's day lock.
func (s *BookingService) Create(ctx context.Context, req CreateReservationRequest) (*ReservationDTO, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	in, err := parseBookingInput(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	res, err := s.loadBookableResource(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if err := reservation.ValidateConversion(res, req.ConvertTo, req.ConvertedTo); err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = s.reservations.WithinResourceLock(ctx, res.ID(), in.date, func(ctx context.Context, repo reservation.Repository) error {
		existing, err := repo.ListActive(ctx, res.ID(), in.date)
		if err != nil {
			return err
		}
		if blocker := reservation.FirstConflict(existing, in.interval); blocker != nil {
			return apperror.NewConflictError(fmt.Sprintf("%s on %s overlaps reservation %s (%s)",
				in.interval, in.date, blocker.ID(), blocker.Interval()))
		}

		q, err := s.quote(ctx, res, in)
		if err != nil {
			return err
		}

		r, err := reservation.New(reservation.NewParams{
			Resource:    res,
			Date:        in.date,
			Interval:    in.interval,
			Price:       q.Total,
			BasePrice:   q.Base,
			PromotionID: q.PromotionID,
			Contact: reservation.Contact{
				Name:  req.Contact.Name,
				Email: req.Contact.Email,
				Phone: req.Contact.Phone,
			},
			ConvertTo:   req.ConvertTo,
			ConvertedTo: req.ConvertedTo,
		})
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		s.logger.Info("reservation rejected",
			zap.String("resource_id", req.ResourceID.String()),
			zap.String("date", req.Date),
			zap.String("interval", in.interval.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", created.ID().String()),
		zap.String("resource_id", created.ResourceID().String()),
		zap.String("date", created.Date().String()),
		zap.String("interval", created.Interval().String()),
		zap.Int64("price", created.Price()),
	)

	s.publish(ctx, contracts.ReservationCreated, contracts.ReservationCreatedEvent{
		ReservationID: created.ID(),
		ResourceID:    created.ResourceID(),
		ResourceKind:  string(created.ResourceKind()),
		Date:          created.Date().String(),
		StartTime:     timerange.FormatClock(created.Interval().Start),
		EndTime:       timerange.FormatClock(created.Interval().End),
		Price:         created.Price(),
		BasePrice:     created.BasePrice(),
		PromotionID:   created.PromotionID(),
		ConvertedTo:   created.ConvertedTo(),
		OccurredAt:    time.Now().UTC(),
	})

	return toReservationDTO(created), nil
}

// SetStatus applies an administrative or user status change. Requesting the
// current status succeeds without writing or publishing anything.
func (s *BookingService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*ReservationDTO, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyStatus(ctx, s.reservations, s.publisher, s.logger, r, reservation.Status(status)); err != nil {
		return nil, err
	}
	return toReservationDTO(r), nil
}

// Get retrieves a reservation by its ID.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationDTO(r), nil
}

// ListForDay returns every reservation of a resource on date, ordered by start.
func (s *BookingService) ListForDay(ctx context.Context, resourceID uuid.UUID, date string) ([]*ReservationDTO, error) {
	d, err := timerange.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.resources.FindByID(ctx, resourceID); err != nil {
		return nil, err
	}
	list, err := s.reservations.ListForDay(ctx, resourceID, d)
	if err != nil {
		return nil, err
	}
	dtos := make([]*ReservationDTO, len(list))
	for i, r := range list {
		dtos[i] = toReservationDTO(r)
	}
	return dtos, nil
}

// FreeSlots returns the maximal free windows of the operating day.
func (s *BookingService) FreeSlots(ctx context.Context, resourceID uuid.UUID, date string) (*FreeSlotsDTO, error) {
	d, err := timerange.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.resources.FindByID(ctx, resourceID); err != nil {
		return nil, err
	}
	existing, err := s.reservations.ListActive(ctx, resourceID, d)
	if err != nil {
		return nil, err
	}

	free := reservation.FreeSlots(existing, s.day.Start, s.day.End)
	slots := make([]IntervalDTO, len(free))
	for i, f := range free {
		slots[i] = IntervalDTO{Start: timerange.FormatClock(f.Start), End: timerange.FormatClock(f.End)}
	}
	return &FreeSlotsDTO{ResourceID: resourceID, Date: d.String(), Slots: slots}, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, payload contracts.Keyed) {
	publishEvent(ctx, s.publisher, s.logger, eventType, payload)
}

// applyStatus transitions r, persists it with optimistic locking and emits the
// matching event. It is a no-op when r already has next.
func applyStatus(ctx context.Context, repo reservation.Repository, publisher contracts.Publisher, logger *zap.Logger, r *reservation.Reservation, next reservation.Status) error {
	previous := r.Status()
	changed, err := r.SetStatus(next)
	if err != nil {
		return err
	}
	if !changed {
		logger.Debug("status unchanged",
			zap.String("reservation_id", r.ID().String()),
			zap.String("status", string(previous)),
		)
		return nil
	}

	r.IncrementVersion()
	if err := repo.Update(ctx, r); err != nil {
		return err
	}

	logger.Info("reservation status changed",
		zap.String("reservation_id", r.ID().String()),
		zap.String("from", string(previous)),
		zap.String("to", string(r.Status())),
	)

	eventType := contracts.ReservationConfirmed
	if r.Status() == reservation.StatusCancelled {
		eventType = contracts.ReservationCancelled
	}
	publishEvent(ctx, publisher, logger, eventType, contracts.ReservationStatusChangedEvent{
		ReservationID:   r.ID(),
		ResourceID:      r.ResourceID(),
		Date:            r.Date().String(),
		PreviousStatus:  string(previous),
		Status:          string(r.Status()),
		PaymentIntentID: r.PaymentIntentID(),
		OccurredAt:      time.Now().UTC(),
	})
	return nil
}

// publishEvent is best effort: the state change is already committed.
func publishEvent(ctx context.Context, publisher contracts.Publisher, logger *zap.Logger, eventType string, payload contracts.Keyed) {
	if err := publisher.Publish(ctx, eventType, payload); err != nil {
		logger.Error("failed to publish event",
			zap.String("type", eventType),
			zap.String("key", payload.EventKey()),
			zap.Error(err),
		)
	}
}
