package apperrors

import (
	"errors"
)

// Kind classifies an error for display and handling.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindAPI
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

var (
	// ErrTransport marks requests that never produced a decodable response.
	ErrTransport = New("transport error")
	// ErrAPI marks non-2xx responses. The message is the server supplied reason.
	ErrAPI = New("api error")
	// ErrValidation marks client side checks that failed before submission.
	ErrValidation = New("validation error")
)

// KindOf classifies err. Validation wins over API which wins over transport.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAPI):
		return KindAPI
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var appErr Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return 0
}
