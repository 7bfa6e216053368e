package errs

import "errors"

// Business outcomes surfaced by the reservation use cases
var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidState        = errors.New("invalid reservation state")
	ErrDateUnavailable     = errors.New("requested date is not available")
	ErrVersionConflict     = errors.New("reservation was modified concurrently")

	// Query errors
	ErrInvalidWindow = errors.New("invalid availability window")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
