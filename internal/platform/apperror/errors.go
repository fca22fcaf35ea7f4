package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the booking engine's error taxonomy.
// Callers match with errors.Is; every DomainError unwraps to exactly one of these.
var (
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrInvalidConversion = errors.New("invalid conversion")
	ErrNoApplicableRate  = errors.New("no applicable rate")
	ErrConflict          = errors.New("conflict")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
)

// DomainError carries a taxonomy sentinel plus a human readable message.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New builds a DomainError for the given sentinel.
func New(sentinel error, format string, args ...any) *DomainError {
	return &DomainError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Err: ErrNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports an overlapping booking or a lost concurrent update.
func NewConflictError(message string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: message}
}

// NewInvalidTransitionError reports a forbidden lifecycle transition.
func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{Err: ErrInvalidTransition, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewValidationError reports malformed request input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: message}
}

// Kind returns the taxonomy sentinel wrapped by err, or nil for foreign errors.
func Kind(err error) error {
	for _, sentinel := range []error{
		ErrInvalidInterval,
		ErrInvalidCatalog,
		ErrInvalidConversion,
		ErrNoApplicableRate,
		ErrConflict,
		ErrInvalidStatus,
		ErrInvalidTransition,
		ErrNotFound,
		ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
