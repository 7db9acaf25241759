package web

import "errors"

// Error is a request error carrying the HTTP status to respond with and,
// optionally, per-field validation messages.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// NewRequestError wraps an error so the response layer knows it is safe to
// show the client at the given status.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// GetRequestError unwraps err to the trusted *Error if there is one.
func GetRequestError(err error) (*Error, bool) {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr, true
	}
	return nil, false
}
