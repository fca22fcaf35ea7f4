package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// Envelope is the JSON body returned by every endpoint.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response for malformed input.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{Code: "BAD_REQUEST", Message: message},
	})
}

// Error maps a domain error onto an HTTP status and writes it.
func Error(c *gin.Context, err error) {
	status, code := Classify(err)

	message := err.Error()
	var domErr *apperror.DomainError
	if errors.As(err, &domErr) && domErr.Message != "" {
		message = domErr.Message
	}
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, Envelope{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// Classify returns the HTTP status and stable error code for err.
func Classify(err error) (int, string) {
	switch apperror.Kind(err) {
	case apperror.ErrNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case apperror.ErrConflict:
		return http.StatusConflict, "CONFLICT"
	case apperror.ErrInvalidTransition:
		return http.StatusConflict, "INVALID_TRANSITION"
	case apperror.ErrInvalidInterval:
		return http.StatusBadRequest, "INVALID_INTERVAL"
	case apperror.ErrInvalidStatus:
		return http.StatusBadRequest, "INVALID_STATUS"
	case apperror.ErrValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case apperror.ErrInvalidCatalog:
		return http.StatusUnprocessableEntity, "INVALID_CATALOG"
	case apperror.ErrInvalidConversion:
		return http.StatusUnprocessableEntity, "INVALID_CONVERSION"
	case apperror.ErrNoApplicableRate:
		return http.StatusUnprocessableEntity, "NO_APPLICABLE_RATE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
