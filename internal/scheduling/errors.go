package scheduling

import (
	"errors"

	"github.com/dmitrymomot/mailscheduler/pkg/validator"
)

var (
	// ErrValidation is wrapped by every error Validate returns.
	// Use validator.ExtractValidationErrors to get the failing fields.
	ErrValidation = validator.ErrValidation

	// ErrScheduleFailed indicates the runner refused the job.
	ErrScheduleFailed = errors.New("scheduling: failed to schedule email")
)
