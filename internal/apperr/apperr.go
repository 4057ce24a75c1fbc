// Package apperr defines the error categories used across eustat-cli.
//
// Error taxonomy
//
//	InvalidParameterError – bad or contradictory filter arguments (unknown
//	                        dimension, lastTimePeriod combined with a range
//	                        form, malformed date, …). Caller error, surfaced
//	                        immediately, never retried.
//
//	DatasetNotFoundError  – dataset code unknown to the catalogue, or rejected
//	                        by the remote source with HTTP 404.
//
//	DecodeError           – malformed JSON-stat payload. Fatal for that fetch;
//	                        the payload is discarded and never cached.
//
//	APIError              – the dissemination API answered with a non-2xx
//	                        status (or an async 413 warning). Carries the
//	                        status code; no automatic retry at this layer.
//
//	ErrCancelled          – the user deliberately aborted an interactive flow.
//	                        Exit code: 0 (not a failure).
//
// Everything else is a plain Go error (I/O, network, …) and is propagated
// with fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation. The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// InvalidParameterError represents an error caused by invalid or missing
// user input, such as contradictory time filters or an unknown dimension.
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string { return e.Message }

// InvalidParameter creates an InvalidParameterError with the given message.
func InvalidParameter(msg string) error { return &InvalidParameterError{Message: msg} }

// InvalidParameterf creates a formatted InvalidParameterError.
func InvalidParameterf(format string, args ...any) error {
	return &InvalidParameterError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidParameter reports whether err is (or wraps) an *InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var e *InvalidParameterError
	return errors.As(err, &e)
}

// DatasetNotFoundError is returned when a dataset code is unknown, either to
// the in-memory catalogue or to the remote source.
type DatasetNotFoundError struct {
	Code string
}

func (e *DatasetNotFoundError) Error() string {
	if e.Code == "" {
		return "dataset not found"
	}
	return fmt.Sprintf("dataset not found: %s", e.Code)
}

// NotFound creates a DatasetNotFoundError for the given dataset code.
func NotFound(code string) error { return &DatasetNotFoundError{Code: code} }

// IsNotFound reports whether err is (or wraps) a *DatasetNotFoundError.
func IsNotFound(err error) bool {
	var e *DatasetNotFoundError
	return errors.As(err, &e)
}

// DecodeError is returned when a statistical payload is malformed: dimension
// lists and sizes disagree, a flat index is out of range, or the body is not
// valid JSON-stat at all.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string { return "decode: " + e.Message }

// Decode creates a DecodeError with the given message.
func Decode(msg string) error { return &DecodeError{Message: msg} }

// Decodef creates a formatted DecodeError.
func Decodef(format string, args ...any) error {
	return &DecodeError{Message: fmt.Sprintf(format, args...)}
}

// IsDecode reports whether err is (or wraps) a *DecodeError.
func IsDecode(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// APIError is returned when the dissemination API responds with a non-2xx
// HTTP status. Using a typed error allows callers to distinguish transient
// failures from caller errors without string matching.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("eurostat api status %d", e.Status)
	}
	return fmt.Sprintf("eurostat api status %d: %s", e.Status, e.Message)
}

// API creates an APIError with the given status code and message.
func API(status int, msg string) error { return &APIError{Status: status, Message: msg} }

// IsAPI reports whether err is (or wraps) an *APIError.
func IsAPI(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}
