package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/adapter"
	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/repository/memory"
	"github.com/sportsrental/service-booking/internal/saga"
)

type publishedEvent struct {
	Type    string
	Payload contracts.Keyed
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload contracts.Keyed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	resources    *memory.ResourceStore
	reservations *memory.ReservationStore
	promos       *memory.PromotionStore
	publisher    *recordingPublisher
	gateway      *adapter.MockPaymentGateway

	resourceSvc *ResourceService
	bookingSvc  *BookingService
	paymentSvc  *PaymentService
	promoSvc    *PromoService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	env := &testEnv{
		resources:    memory.NewResourceStore(),
		reservations: memory.NewReservationStore(),
		promos:       memory.NewPromotionStore(),
		publisher:    &recordingPublisher{},
		gateway:      adapter.NewMockPaymentGateway(logger),
	}
	checkout := saga.NewCheckoutSagaService(env.reservations, env.gateway, env.publisher, "PHP", logger)

	env.resourceSvc = NewResourceService(env.resources, logger)
	env.bookingSvc = NewBookingService(env.resources, env.reservations, env.promos, env.publisher, catalog.BookableDay(), "PHP", logger)
	env.paymentSvc = NewPaymentService(env.reservations, checkout, env.publisher, "PHP", logger)
	env.promoSvc = NewPromoService(env.promos, logger)
	return env
}

func (e *testEnv) createResource(t *testing.T, slots []TimeSlotDTO) *ResourceDTO {
	t.Helper()
	dto, err := e.resourceSvc.Create(context.Background(), CreateResourceRequest{
		Kind:        "facility",
		Name:        "Court 1",
		Sport:       "basketball",
		TimeSlots:   slots,
		Convertible: true,
		OtherSports: []string{"volleyball"},
	})
	require.NoError(t, err)
	return dto
}

func singleTier() []TimeSlotDTO {
	return []TimeSlotDTO{{Start: 6, End: 23, Price: 500}}
}

func bookingRequest(res *ResourceDTO, start, end string) CreateReservationRequest {
	return CreateReservationRequest{
		ResourceID: res.ID,
		Date:       "20-06-2026",
		StartTime:  start,
		EndTime:    end,
		Contact:    ContactDTO{Name: "Ana Cruz", Email: "ana@example.com", Phone: "09171234567"},
	}
}
