// internal/app/system/httpjson/httpjson.go
//
// Package httpjson is the JSON boundary for the API: request decoding with
// size limits, response writing, and the stable caller-facing error envelope.
// Every handler error is translated here to a code + message; persistence
// error shapes never leak to callers.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"go.uber.org/zap"
)

// Code identifies an error class in the caller-facing taxonomy.
type Code string

const (
	CodeValidation      Code = "validation"
	CodeUnauthenticated Code = "unauthenticated"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeUnavailable     Code = "unavailable"
	CodeInternal        Code = "internal"
)

// Error is an API error carrying a taxonomy code, a human-readable message,
// and, for validation failures, every violated field constraint.
type Error struct {
	Code    Code                `json:"code"`
	Message string              `json:"message"`
	Fields  []inputval.Violation `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation builds a validation error from the collected violations.
func Validation(res *inputval.Result) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "invalid input",
		Fields:  res.Violations(),
	}
}

// ValidationMsg builds a single-field validation error.
func ValidationMsg(field, message string) *Error {
	var res inputval.Result
	res.Add(field, message)
	return Validation(&res)
}

// NotFound builds a not_found error.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Forbidden builds a forbidden error.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// Unauthenticated builds an unauthenticated error.
func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: message}
}

// Conflict builds a conflict error (concurrent-write version mismatch).
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// Unavailable builds an unavailable error (persistence unreachable/timeout).
func Unavailable(message string) *Error {
	return &Error{Code: CodeUnavailable, Message: message}
}

// StatusFor maps a taxonomy code to its HTTP status.
func StatusFor(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON request body of at most maxBytes into dst.
// Unknown fields are rejected so typos surface as validation errors.
func Decode(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) *Error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &Error{Code: CodeValidation, Message: "request body is not valid JSON: " + err.Error()}
	}
	return nil
}

// Write serializes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorEnvelope struct {
	Error *Error `json:"error"`
}

// WriteError translates err into the error envelope. *Error values map by
// their code; context deadline/cancellation maps to unavailable; anything
// else is logged and reported as an opaque internal error.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		// use as-is
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		apiErr = Unavailable("the request timed out; no change was committed")
	default:
		if log != nil {
			log.Error("unhandled error at API boundary", zap.Error(err))
		}
		apiErr = &Error{Code: CodeInternal, Message: "internal server error"}
	}
	Write(w, StatusFor(apiErr.Code), errorEnvelope{Error: apiErr})
}
