package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsSentinel(t *testing.T) {
	err := New(ErrInvalidCatalog, "slot %d overlaps slot %d", 0, 1)

	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "invalid catalog: slot 0 overlaps slot 1", err.Error())
}

func TestDomainError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create reservation: %w", NewConflictError("slot taken"))

	assert.ErrorIs(t, wrapped, ErrConflict)

	var domErr *DomainError
	assert.True(t, errors.As(wrapped, &domErr))
	assert.Equal(t, "slot taken", domErr.Message)
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not found", err: NewNotFoundError("Reservation", "abc"), want: ErrNotFound},
		{name: "transition", err: NewInvalidTransitionError("cancelled", "confirmed"), want: ErrInvalidTransition},
		{name: "validation", err: NewValidationError("email is required"), want: ErrValidation},
		{name: "foreign", err: errors.New("boom"), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}
