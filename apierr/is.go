package apierr

import (
	"errors"
)

// IsCode reports whether err (or anything it wraps) is an *APIError
// carrying the given taxonomy code.
func IsCode(err error, code Code) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
