// Package platformerr defines the error kinds surfaced by the client,
// per the error handling design: validation errors are returned
// directly from the call that triggered them, transport/server errors
// carry enough context (request id, HTTP status) for callers to act
// on them, and write failures report a per-bin outcome.
package platformerr

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Kind enumerates the error categories a caller may want to switch on.
type Kind string

const (
	KindInvalidIdentifier  Kind = "InvalidIdentifier"
	KindInvalidTimestamp   Kind = "InvalidTimestamp"
	KindInvalidGranularity Kind = "InvalidGranularity"
	KindInvalidDatapoint   Kind = "InvalidDatapoint"
	KindTimeout            Kind = "Timeout"
	KindCancelled          Kind = "Cancelled"
	KindTransport          Kind = "Transport"
	KindServerError        Kind = "ServerError"
	KindClientError        Kind = "ClientError"
	KindPartialWriteFailure Kind = "PartialWriteFailure"
)

// Error is the concrete error type returned by the exported operations
// in this module, except a failed datapoint write, which returns
// *PartialWriteFailure. It always carries a Kind so callers can use
// errors.As to recover it without string matching.
type Error struct {
	Kind    Kind
	Message string
	// RequestID, when non-empty, is the X-Request-Id header of the
	// server's response. It is empty for errors raised before a
	// response arrived.
	RequestID string
	// StatusCode is the HTTP status for ClientError/ServerError kinds;
	// zero otherwise.
	StatusCode int
	// Cause, when set, is the underlying error (network failure,
	// context error, JSON decode error, ...).
	Cause error
}

func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (request_id=%s)", e.Kind, e.Message, e.RequestID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, &platformerr.Error{Kind: platformerr.KindTimeout})
// style checks: any *Error target with the same Kind matches, whatever
// its other fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithRequestID attaches a request id to an existing error, returning
// a new *Error (the receiver is not mutated).
func (e *Error) WithRequestID(id string) *Error {
	cp := *e
	cp.RequestID = id
	return &cp
}

// Sentinel constructors for the enumerated error kinds. Kept as
// functions rather than package vars so each call site gets its own
// message and optional cause, preferring wrapped, contextual errors
// over bare sentinels.

func InvalidIdentifier(format string, args ...interface{}) *Error {
	return New(KindInvalidIdentifier, fmt.Sprintf(format, args...))
}

func InvalidTimestamp(format string, args ...interface{}) *Error {
	return New(KindInvalidTimestamp, fmt.Sprintf(format, args...))
}

func InvalidGranularity(format string, args ...interface{}) *Error {
	return New(KindInvalidGranularity, fmt.Sprintf(format, args...))
}

func InvalidDatapoint(format string, args ...interface{}) *Error {
	return New(KindInvalidDatapoint, fmt.Sprintf(format, args...))
}

func Timeout(cause error) *Error {
	return Wrap(KindTimeout, cause, "request deadline exceeded")
}

func Cancelled() *Error {
	return New(KindCancelled, "operation cancelled")
}

func Transport(cause error) *Error {
	return Wrap(KindTransport, cause, "transport failure")
}

func ServerError(statusCode int, requestID, message string) *Error {
	return &Error{Kind: KindServerError, Message: message, StatusCode: statusCode, RequestID: requestID}
}

func ClientError(statusCode int, requestID, message string) *Error {
	return &Error{Kind: KindClientError, Message: message, StatusCode: statusCode, RequestID: requestID}
}

// PartialWriteFailure describes the outcome of a bin-packed write
// where at least one bin failed. BinOutcomes is in bin submission
// order; a nil entry means that bin succeeded.
type PartialWriteFailure struct {
	BinOutcomes []error
}

func (p *PartialWriteFailure) Error() string {
	failed := 0
	for _, e := range p.BinOutcomes {
		if e != nil {
			failed++
		}
	}
	return fmt.Sprintf("PartialWriteFailure: %d of %d bins failed", failed, len(p.BinOutcomes))
}

// Cause exposes the combined failure via go.uber.org/multierr,
// consumed by callers that just want one error to log.
func (p *PartialWriteFailure) Cause() error {
	var nonNil []error
	for _, e := range p.BinOutcomes {
		if e != nil {
			nonNil = append(nonNil, e)
		}
	}
	combined := multierr.Combine(nonNil...)
	if combined == nil {
		return nil
	}
	return errors.Wrap(combined, "bin write")
}
