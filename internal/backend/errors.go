// Package backend classifies failures of external collaborators (model
// servers, speech engines, telephony) so callers can choose a fallback from
// the kind of failure instead of from a caught generic error.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/openai/openai-go"
)

// ErrorKind is the coarse category of a backend failure.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	Unavailable
	Timeout
	InvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Timeout:
		return "timeout"
	case InvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// ErrNotConfigured is returned by operations whose backend was never set up.
var ErrNotConfigured = errors.New("backend not configured")

// Error is a failed backend operation.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind without classifying it.
func New(op string, kind ErrorKind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Wrap classifies err and tags it with op. A nil err stays nil and an
// already classified error keeps its kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var be *Error
	if errors.As(err, &be) {
		return &Error{Op: op, Kind: be.Kind, Err: err}
	}

	return &Error{Op: op, Kind: classify(err), Err: err}
}

// KindOf reports the kind of err, Unknown if it was never classified.
func KindOf(err error) ErrorKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return classify(err)
}

// HTTPStatus maps a backend failure to the status code surfaced by the API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Unavailable:
		return http.StatusServiceUnavailable
	case Timeout:
		return http.StatusGatewayTimeout
	case InvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func classify(err error) ErrorKind {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, ErrNotConfigured) {
		return Unavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return kindForStatus(apiErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Unavailable
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Unavailable
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return Unavailable
	}

	return Unknown
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest,
		status == http.StatusRequestEntityTooLarge,
		status == http.StatusUnsupportedMediaType,
		status == http.StatusUnprocessableEntity:
		return InvalidInput
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return Timeout
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusNotFound,
		status == http.StatusTooManyRequests,
		status >= 500:
		return Unavailable
	default:
		return Unknown
	}
}

// StatusError builds a classified error from a non-2xx HTTP response status,
// for collaborators reached over plain HTTP.
func StatusError(op string, status int) error {
	return &Error{Op: op, Kind: kindForStatus(status), Err: fmt.Errorf("unexpected status %d", status)}
}
