package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

var validate = validator.New()

// Validate runs struct tag validation and converts failures into a
// field-keyed validation error.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrors))
	for _, fe := range fieldErrors {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}
