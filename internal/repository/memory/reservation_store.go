package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/reservation"
	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// ReservationStore is an in-memory reservation.Repository. Aggregates are
// copied on the way in and out so callers never share state with the store.
type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*reservation.Reservation

	locksMu  sync.Mutex
	dayLocks map[string]*sync.Mutex
}

// NewReservationStore creates an empty store.
func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		dayLocks:     make(map[string]*sync.Mutex),
	}
}

func dayKey(resourceID uuid.UUID, date timerange.Date) string {
	return resourceID.String() + "/" + date.String()
}

func (s *ReservationStore) lockFor(resourceID uuid.UUID, date timerange.Date) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	key := dayKey(resourceID, date)
	l, ok := s.dayLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.dayLocks[key] = l
	}
	return l
}

// WithinResourceLock serializes fn against every other caller for the same resource and day.
func (s *ReservationStore) WithinResourceLock(ctx context.Context, resourceID uuid.UUID, date timerange.Date, fn func(ctx context.Context, repo reservation.Repository) error) error {
	l := s.lockFor(resourceID, date)
	l.Lock()
	defer l.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s)
}

func (s *ReservationStore) listLocked(resourceID uuid.UUID, date timerange.Date, activeOnly bool) []*reservation.Reservation {
	out := make([]*reservation.Reservation, 0)
	for _, r := range s.reservations {
		if r.ResourceID() != resourceID || !r.Date().Equal(date) {
			continue
		}
		if activeOnly && !r.IsActive() {
			continue
		}
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return timerange.Less(out[i].Interval(), out[j].Interval()) })
	return out
}

// ListActive returns the day's non-cancelled reservations ordered by start.
func (s *ReservationStore) ListActive(_ context.Context, resourceID uuid.UUID, date timerange.Date) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(resourceID, date, true), nil
}

// ListForDay returns every reservation of the day ordered by start.
func (s *ReservationStore) ListForDay(_ context.Context, resourceID uuid.UUID, date timerange.Date) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(resourceID, date, false), nil
}

// Insert stores a new reservation, rejecting overlaps with the day's active ones.
func (s *ReservationStore) Insert(_ context.Context, r *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reservations[r.ID()]; exists {
		return apperror.NewConflictError("reservation " + r.ID().String() + " already exists")
	}
	if r.IsActive() {
		if blocker := reservation.FirstConflict(s.listLocked(r.ResourceID(), r.Date(), true), r.Interval()); blocker != nil {
			return apperror.NewConflictError("interval " + r.Interval().String() + " overlaps reservation " + blocker.ID().String())
		}
	}
	if err := s.checkIntentLocked(r); err != nil {
		return err
	}
	s.reservations[r.ID()] = r.Clone()
	return nil
}

// Update replaces a stored reservation whose version is exactly one behind r.
func (s *ReservationStore) Update(_ context.Context, r *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reservations[r.ID()]
	if !ok {
		return apperror.NewNotFoundError("Reservation", r.ID().String())
	}
	if stored.Version() != r.Version()-1 {
		return apperror.NewConflictError("reservation was modified by another transaction")
	}
	if err := s.checkIntentLocked(r); err != nil {
		return err
	}
	s.reservations[r.ID()] = r.Clone()
	return nil
}

func (s *ReservationStore) checkIntentLocked(r *reservation.Reservation) error {
	if r.PaymentIntentID() == "" {
		return nil
	}
	for id, other := range s.reservations {
		if id != r.ID() && other.PaymentIntentID() == r.PaymentIntentID() {
			return apperror.NewConflictError("payment intent " + r.PaymentIntentID() + " is bound to another reservation")
		}
	}
	return nil
}

// FindByID returns the reservation or ErrNotFound.
func (s *ReservationStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Reservation", id.String())
	}
	return r.Clone(), nil
}

// FindByPaymentIntent returns the reservation bound to intentID or ErrNotFound.
func (s *ReservationStore) FindByPaymentIntent(_ context.Context, intentID string) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.PaymentIntentID() == intentID {
			return r.Clone(), nil
		}
	}
	return nil, apperror.NewNotFoundError("Reservation with payment intent", intentID)
}
