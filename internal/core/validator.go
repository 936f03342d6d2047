package core

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"climateplanner/internal/types"
)

// Validator wraps go-playground/validator for request struct validation.
// Handlers tag request structs with `validate:"..."` rules (including the
// built-in latitude/longitude range tags) and call ValidateStruct after
// decoding.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a new Validator.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateStruct validates a decoded request struct. On failure it returns a
// *types.AppError (400) carrying one details entry per failed field, keyed by
// the struct field name with the violated rule as the value.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the caller passed something that is not a
		// struct. That is a programming error, not client input.
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation failed", err)
	}

	details := make(map[string]any, len(validationErrs))
	for _, fe := range validationErrs {
		details[fe.Field()] = fe.Tag()
	}

	code := types.ErrCodeValidationMissingField
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "latitude":
			code = types.ErrCodeValidationInvalidLat
		case "longitude":
			code = types.ErrCodeValidationInvalidLon
		}
	}

	return types.NewAppErrorWithDetails(code, "request validation failed", err, details)
}
