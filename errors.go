package hdbscan

import (
	"fmt"

	"github.com/pingcap/errors"
)

// Kind identifies one of the three error categories spec.md §7 allows.
type Kind int

const (
	// InvalidParameter marks a Config value rejected at construction or
	// Fit entry, before any clustering work begins.
	InvalidParameter Kind = iota
	// NotFitted marks an accessor called before Fit completed.
	NotFitted
	// Resource marks an out-of-memory or recursion-depth failure surfaced
	// after freeing intermediate buffers. No function in this package
	// returns an error of this kind.
	Resource
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case NotFitted:
		return "NotFitted"
	case Resource:
		return "Resource"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with a message and, for Resource failures, the
// underlying cause. Errors are never swallowed internally: every failure
// site below returns one of these rather than logging-and-continuing.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("hdbscan: %s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("hdbscan: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, hdbscan.ErrNotFitted) without string matching.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// Sentinels usable with errors.Is. Only Kind is compared, never the message.
var (
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrNotFitted        = &Error{Kind: NotFitted}
	ErrResource         = &Error{Kind: Resource}
)

// fail builds a *Error of the given kind, stack-annotated via pingcap/errors
// so the original call site survives error-wrapping up the call chain.
func fail(kind Kind, format string, args ...interface{}) error {
	return errors.Trace(&Error{Kind: kind, msg: fmt.Sprintf(format, args...)})
}

// failWrap builds a *Error of the given kind around a lower-level cause.
func failWrap(kind Kind, cause error, format string, args ...interface{}) error {
	return errors.Trace(&Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: cause})
}
