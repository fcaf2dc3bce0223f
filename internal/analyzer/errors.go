package analyzer

import (
	"context"
	"errors"
	"net"
)

// ErrorKind classifies a failed analysis request. Invalid input is caught
// before dispatch; the remaining kinds are only possible after a request has
// gone out.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota
	KindServiceRejected
	KindTimeout
	KindUnreachable
	KindUnknown
)

// Stable user-facing messages per kind. Service-rejected errors carry the
// service's own message verbatim instead.
const (
	msgTimeout     = "The analysis request timed out. Please try again."
	msgUnreachable = "Could not reach the analysis service. Check your connection and try again."
	msgUnknown     = "Something went wrong during analysis. Please try again."
)

// Error is a classified analysis failure. Message is safe to show to the
// user as-is.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func invalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func serviceRejected(message string, cause error) *Error {
	return &Error{Kind: KindServiceRejected, Message: message, cause: cause}
}

// classify maps a transport-level failure onto the error taxonomy. The raw
// error is kept as the cause but never shown verbatim.
func classify(err error) *Error {
	var asErr *Error
	if errors.As(err, &asErr) {
		return asErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: msgTimeout, cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: msgTimeout, cause: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Kind: KindUnreachable, Message: msgUnreachable, cause: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Kind: KindUnreachable, Message: msgUnreachable, cause: err}
	}

	return &Error{Kind: KindUnknown, Message: msgUnknown, cause: err}
}
