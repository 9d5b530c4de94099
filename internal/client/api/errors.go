package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Every failed call surfaces as exactly one of four error kinds:
// ServerError (the backend answered with a non-2xx status), ConnectivityError
// (no response at all), TimeoutError (the configured deadline elapsed), or
// UnexpectedError (anything else). Callers match them with errors.As and
// never see raw transport errors.

// ServerError is a non-2xx response from the backend.
type ServerError struct {
	Status      int
	Message     string
	FieldErrors map[string][]string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request with status %d", e.Status)
	}
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
}

// ConnectivityError means the request never produced a response.
type ConnectivityError struct {
	Message string
	Err     error
}

func (e *ConnectivityError) Error() string { return e.Message }
func (e *ConnectivityError) Unwrap() error { return e.Err }

// TimeoutError means the call exceeded its deadline.
type TimeoutError struct {
	Message string
	Err     error
}

func (e *TimeoutError) Error() string { return e.Message }
func (e *TimeoutError) Unwrap() error { return e.Err }

// UnexpectedError covers failures outside the other three kinds.
type UnexpectedError struct {
	Message string
	Err     error
}

func (e *UnexpectedError) Error() string { return e.Message }
func (e *UnexpectedError) Unwrap() error { return e.Err }

// classifyTransport converts an error returned by http.Client.Do into one of
// the normalized kinds. The connectivity messages distinguish a hostname that
// does not resolve (usually a misconfigured base URL) from a host that
// resolves but cannot be reached (usually no network or the service is down),
// because the two need different fixes from the user.
func classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "the request timed out; please try again", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Message: "the request timed out; please try again", Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectivityError{
			Message: "cannot resolve the server address; check the configured server URL",
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &ConnectivityError{
			Message: "cannot reach the server; check your network connection",
			Err:     err,
		}
	}

	return &UnexpectedError{Message: "unexpected error: " + err.Error(), Err: err}
}
