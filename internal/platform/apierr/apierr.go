package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeQuotaExceeded   = "quota_exceeded"
	CodeNotFound        = "not_found"
	CodeValidation      = "validation_error"
	CodeUpstreamFailure = "upstream_failure"
	CodeUpstreamBusy    = "upstream_busy"
	CodeUnauthorized    = "unauthorized"
	CodeConflict        = "conflict"
	CodeRateLimited     = "rate_limited"
	CodeUnavailable     = "unavailable"
	CodeDeliveryFailed  = "delivery_failed"
	CodeInternal        = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// BusyMessage is shown when the recommendation model is rate limiting us.
const BusyMessage = "AI is busy. Please wait 10 seconds and try again."

// PublicMessage is the text safe to return to clients. Upstream and internal causes
// stay in the logs.
func (e *Error) PublicMessage() string {
	if e == nil {
		return ""
	}
	switch e.Code {
	case CodeUpstreamBusy:
		return BusyMessage
	case CodeUpstreamFailure:
		return "Failed to generate recommendations."
	case CodeInternal:
		return "internal server error"
	case CodeDeliveryFailed:
		return "Failed to send email"
	case CodeUnavailable:
		return "service is busy, please try again"
	}
	return e.Error()
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func QuotaExceeded(msg string) *Error {
	return New(http.StatusForbidden, CodeQuotaExceeded, errors.New(msg))
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", what))
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Errorf(format, args...))
}

// Upstream hides the collaborator error from callers; the cause is kept for logs.
func Upstream(err error) *Error {
	return New(http.StatusBadGateway, CodeUpstreamFailure, err)
}

func UpstreamBusy(err error) *Error {
	return New(http.StatusTooManyRequests, CodeUpstreamBusy, err)
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, errors.New(msg))
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, CodeConflict, errors.New(msg))
}

// DeliveryFailed wraps an email provider failure.
func DeliveryFailed(err error) *Error {
	return New(http.StatusBadGateway, CodeDeliveryFailed, err)
}

func RateLimited(msg string) *Error {
	return New(http.StatusTooManyRequests, CodeRateLimited, errors.New(msg))
}

// Unavailable marks a transient failure the caller may retry.
func Unavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeUnavailable, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From returns the *Error carried by err, or nil.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsCode reports whether err carries an *Error with the given code.
func IsCode(err error, code string) bool {
	apiErr := From(err)
	return apiErr != nil && apiErr.Code == code
}
