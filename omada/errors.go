package omada

import (
	"errors"
	"fmt"
)

// ErrNotLoggedIn is returned by authenticated operations that are invoked
// before a successful Login or after Logout. The check is purely local; no
// network request is issued.
var ErrNotLoggedIn = errors.New("omada: not logged in")

// ErrNoMorePages is returned by Pager.Next once every page has been consumed.
var ErrNoMorePages = errors.New("omada: all pages have been loaded")

// TransportError wraps a network-level failure: unreachable host, timeout,
// connection reset. The client never retries these itself.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("omada: transport failure on %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError is returned when the controller rejects the session's
// credentials, either at login or when it revokes an established session.
type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("omada: authentication failed (errorCode %d): %s", e.Code, e.Message)
}

// ProtocolError is returned when a response body does not match the shape the
// client expects, usually a controller API version mismatch. The body is never
// silently coerced into an empty result.
type ProtocolError struct {
	URL string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("omada: unexpected response from %s: %v", e.URL, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// APIError is a non-zero errorCode reported in the controller's response
// envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("omada: errorCode: %d, msg: %q", e.Code, e.Message)
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsAuth reports whether err is, or wraps, an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsProtocol reports whether err is, or wraps, a ProtocolError.
func IsProtocol(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// AsAPIError extracts an APIError from err's chain, if one is present.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
