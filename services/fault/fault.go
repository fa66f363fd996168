// Package fault carries the error taxonomy shared by the lifecycle services.
// Handlers translate codes to HTTP statuses; store and upstream details stay
// inside the service boundary.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	Validation   Code = "validationError"
	Unauthorized Code = "unauthorized"
	Forbidden    Code = "forbidden"
	Conflict     Code = "conflict"
	NotFound     Code = "notFound"
	Expired      Code = "expired"
	Upstream     Code = "upstreamFailure"
	Server       Code = "serverError"
)

// Error is a coded service error. Meta carries safe, caller-facing extras,
// e.g. the existing booking id and expiry on a duplicate-booking conflict.
type Error struct {
	Code    Code
	Message string
	Meta    map[string]interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMeta attaches a caller-facing detail and returns the same error.
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = map[string]interface{}{}
	}
	e.Meta[key] = value
	return e
}

// As unwraps err into *Error, or nil when err carries no code.
func As(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// CodeOf returns the code of err, defaulting to Server for uncoded errors.
func CodeOf(err error) Code {
	if fe := As(err); fe != nil {
		return fe.Code
	}
	return Server
}

// HTTPStatus maps a code to its transport status.
func HTTPStatus(code Code) int {
	switch code {
	case Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Expired:
		return http.StatusGone
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
