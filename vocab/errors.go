package vocab

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnexpectedResponse is wrapped by transport errors caused by a non-2xx response status.
var ErrUnexpectedResponse = errors.New("vocabulary service returned a non-2xx HTTP status code")

// ParseError is returned when a vocabulary service response body is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse vocabulary service response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TransportError is returned when the call to the vocabulary service fails.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was caused by a client or context timeout.
func (e *TransportError) Timeout() bool {
	var netErr interface{ Timeout() bool }
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}
