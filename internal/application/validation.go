package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sportsrental/service-booking/internal/platform/apperror"
)

// requestValidator checks request DTOs with the same `binding` tags gin uses,
// so callers that bypass HTTP get identical validation.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Struct validates s and returns an ErrValidation DomainError listing every failed field.
func (v *requestValidator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.NewValidationError(err.Error())
	}
	return apperror.NewValidationError(translateValidationErrors(validationErrs))
}

func translateValidationErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		field := err.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		var msg string
		switch err.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "oneof":
			msg = fmt.Sprintf("must be one of [%s]", err.Param())
		case "gte":
			msg = fmt.Sprintf("must be at least %s", err.Param())
		case "lte":
			msg = fmt.Sprintf("must be at most %s", err.Param())
		default:
			msg = fmt.Sprintf("failed %s validation", err.Tag())
		}
		messages = append(messages, field+" "+msg)
	}
	return strings.Join(messages, "; ")
}
