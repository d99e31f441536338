package errs

import "errors"

// Error kinds surfaced by the booking core. Concrete errors are marked with
// one of these so callers can classify them with Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrExpired         = errors.New("hold expired")
	ErrInvalidInput    = errors.New("invalid input")

	// Infrastructure
	ErrRateLimited             = errors.New("rate limited")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// Kind returns the sentinel err is marked with, or nil for unclassified errors.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrForbidden, ErrSlotUnavailable, ErrExpired, ErrInvalidInput, ErrRateLimited} {
		if Is(err, k) {
			return k
		}
	}
	return nil
}
