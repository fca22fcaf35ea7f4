// Package memory provides in-process stores for STORAGE=memory and for tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sportsrental/service-booking/internal/domain/catalog"
	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// ResourceStore is an in-memory catalog.ResourceRepository.
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[uuid.UUID]*catalog.Resource
}

// NewResourceStore creates an empty store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{resources: make(map[uuid.UUID]*catalog.Resource)}
}

// FindByID returns the resource or ErrNotFound.
func (s *ResourceStore) FindByID(_ context.Context, id uuid.UUID) (*catalog.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Resource", id.String())
	}
	return r, nil
}

// Save stores r, replacing any resource with the same id.
func (s *ResourceStore) Save(_ context.Context, r *catalog.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID()] = catalog.Reconstitute(r.ID(), r.Kind(), r.Name(), r.Sport(), r.TimeSlots(),
		r.Convertible(), r.OtherSports(), r.CreatedAt(), r.UpdatedAt())
	return nil
}
