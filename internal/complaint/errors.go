package complaint

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Anything the
// engine returns outside this set is a persistence or programming failure
// and surfaces as a 500; store errors are propagated, never swallowed.
var (
	ErrNotFound      = errors.New("complaint not found")
	ErrForbidden     = errors.New("access denied")
	ErrInvalidStatus = errors.New("invalid status")
	ErrConflict      = errors.New("complaint already taken")
)

// ValidationError reports the missing or blank required fields of a request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
