package domain

import "errors"

// Error taxonomy shared by use cases and handlers.
// Specific errors wrap one of these so handlers can choose a status code
// with errors.Is.
var (
	// ErrValidation business-rule violation or malformed input
	ErrValidation = errors.New("validation error")

	// ErrSlotUnavailable slot already booked, missing, or lost a concurrent race
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrQuota student has no usable quota plan (penalized or none)
	ErrQuota = errors.New("quota error")

	// ErrInvalidState operation not valid for the current entity status
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable store unreachable or deadline exceeded
	ErrServiceUnavailable = errors.New("service unavailable")
)

// IsBusinessError returns true if err belongs to the client-facing taxonomy
// rather than an infrastructure failure
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrQuota) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrNotFound)
}
