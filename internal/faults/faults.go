package faults

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a failure into the closed taxonomy used across the
// dispatch path.
type Kind int

const (
	// KindValidation means caller-supplied input violated a precondition.
	// Surfaced with its specific message.
	KindValidation Kind = iota
	// KindInternal means an unexpected failure inside an evaluator or the
	// compute transport. Logged in full, surfaced as a generic message.
	KindInternal
	// KindTransient means the compute unit was unreachable or timed out.
	// Triggers the fallback provider when one is configured.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInternal:
		return "internal"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error carries a classified failure with its original cause preserved
// for logging.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation builds a caller-correctable input error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure, keeping cause for logs.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// Transient wraps an unreachable/timeout failure, keeping cause for logs.
func Transient(message string, cause error) *Error {
	return &Error{Kind: KindTransient, Message: message, Cause: cause}
}

// KindOf extracts the kind from err. Errors outside the taxonomy are
// reclassified as internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// ClassifyTransport maps a raw transport error onto the taxonomy.
// Timeouts and connection failures are transient; everything else is
// internal.
func ClassifyTransport(err error) *Error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Transient("compute unit timed out", err)
		}
		return Transient("compute unit unreachable", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return Transient("compute unit timed out", err)
		}
		return Transient("compute unit unreachable", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Transient("compute unit timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return Internal("request canceled", err)
	}

	return Internal("compute transport failure", err)
}
