package apierr

import (
	"net/http"
)

// APIError is the one error type the SDK surfaces for failed Fluxsave
// calls: a non-2xx response, or credentials missing before a call is even
// attempted. Transport failures (connection refused, timeout) are NOT
// wrapped into this type and propagate as-is.
type APIError struct {
	Status  int    // HTTP status
	Code    Code   // taxonomy code resolved from (Status, Message)
	Message string // human-ish summary from the server
	Payload any    // decoded body: map[string]any, []any, string, or nil
	Raw     string // raw (trimmed) body
}

// New builds an APIError with its taxonomy code resolved from the
// status/message pair. The error is not meant to be mutated afterwards.
func New(status int, message string, payload any) *APIError {
	return &APIError{
		Status:  status,
		Code:    ResolveCode(status, message),
		Message: message,
		Payload: payload,
	}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}
