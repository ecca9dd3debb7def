package dashboard

import (
	"errors"
	"fmt"
)

// ErrStale is returned by Client.Refresh when a newer response was already applied.
// The stale response is dropped without touching the render target.
var ErrStale = errors.New("stale response discarded")

// TransportError means the request could not complete: offline, DNS, connection refused,
// timeout...
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("admin state request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the server answered with a non-2xx status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("admin state request rejected with status %d", e.Code)
}

// DecodeError means a 2xx response body could not be read or decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid admin state response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
