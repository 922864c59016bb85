package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	ErrTransport         = errors.New("catalog transport failure")
	ErrMalformedResponse = errors.New("malformed catalog response")
)

// TransportError reports a network failure or a non-2xx HTTP status.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// MalformedResponseError reports a body that does not decode to a valid record list.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("GET %s: malformed response: %v", e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *MalformedResponseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedResponse}
	}
	return []error{ErrMalformedResponse, e.Err}
}
