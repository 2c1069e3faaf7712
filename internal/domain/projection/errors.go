package projection

import (
	"errors"

	"github.com/okian/nestegg/internal/domain/model"
)

// MaxHorizon is the longest projection, in years, the engine will compute.
const MaxHorizon = model.MaxAge

// User-facing validation messages.
const (
	MsgRetirementAge  = "retirement age must exceed current age"
	MsgHorizonTooLong = "projection horizon must not exceed 150 years"
)

// ValidationError reports an Input Record that cannot be projected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
