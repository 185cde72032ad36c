package route

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies every failure that may cross the HTTP boundary.
type ErrorCode string

const (
	CodeInvalidPage  ErrorCode = "INVALID_PAGE"
	CodePageNotFound ErrorCode = "PAGE_NOT_FOUND"
	CodeAdapter      ErrorCode = "ADAPTER_ERROR"
	CodeExternalAPI  ErrorCode = "EXTERNAL_API_ERROR"
	CodeRateLimited  ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// Error is the typed failure carried from adapters and the router up to
// the HTTP layer, where Code maps to a fixed status.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("route: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("route: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidPage(reason string) *Error {
	return &Error{Code: CodeInvalidPage, Reason: reason}
}

// NotFound reports a valid page ID for which no content can be produced.
func NotFound(reason string) *Error {
	return &Error{Code: CodePageNotFound, Reason: reason}
}

// AdapterFailure wraps an adapter's internal error.
func AdapterFailure(reason string, err error) *Error {
	return &Error{Code: CodeAdapter, Reason: reason, Err: err}
}

// ExternalFailure wraps an upstream content or AI provider error.
func ExternalFailure(reason string, err error) *Error {
	return &Error{Code: CodeExternalAPI, Reason: reason, Err: err}
}

// RateLimited reports throttler exhaustion, kept distinct so clients can
// show a "try again later" state.
func RateLimited(err error) *Error {
	return &Error{Code: CodeRateLimited, Reason: "generation rate limit exhausted", Err: err}
}

// HTTPStatus maps err to its response status. Unclassified errors are
// treated as adapter failures.
func HTTPStatus(err error) int {
	var re *Error
	if !errors.As(err, &re) {
		return http.StatusInternalServerError
	}
	switch re.Code {
	case CodeInvalidPage:
		return http.StatusBadRequest
	case CodePageNotFound:
		return http.StatusNotFound
	case CodeExternalAPI:
		return http.StatusBadGateway
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
