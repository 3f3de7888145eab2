package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport-level mapping. The classification is
// stable API surface; message text is not.
type Kind int

const (
	// KindInternal covers unexpected faults (fetch/aggregation failures).
	KindInternal Kind = iota
	// KindUnauthenticated: no identity on an owner-only operation.
	KindUnauthenticated
	// KindForbidden: identity present but not the form owner.
	KindForbidden
	// KindInvalid: malformed or incomplete input.
	KindInvalid
	// KindNotFound: form/question/response absent.
	KindNotFound
	// KindUpstream: transcription service or blob storage failure.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	// Msg is safe to surface to callers.
	Msg string
	// Err is the underlying cause; logged, never returned to callers for
	// internal and upstream kinds.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf walks the error chain for an *Error and returns its kind.
// Plain errors report KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message for err. Internal and upstream
// errors collapse to a generic message so causes never leak.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindInternal:
			return "internal server error"
		case KindUpstream:
			return "upstream service failure"
		default:
			return ae.Msg
		}
	}
	return "internal server error"
}
