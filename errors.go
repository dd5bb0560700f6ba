package raptor

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorKind is the three-way typed error surface from spec.md §7.
type ErrorKind string

const (
	// ErrInvalidArgument is fatal: bad input the caller must fix.
	ErrInvalidArgument ErrorKind = "invalid_argument"
	// ErrNoData is never actually returned as an error: callers that hit a
	// NoData condition log a warning and return an empty, schema-correct
	// result instead (spec.md §7). The kind still exists so the warning
	// helpers in log.go can be traced back to it.
	ErrNoData ErrorKind = "no_data"
	// ErrInternal marks an invariant violation — an implementation bug,
	// not a caller mistake.
	ErrInternal ErrorKind = "internal"
)

// Error is the engine's error type. It wraps github.com/pkg/errors for
// stack-trace capture the way tidbyt-gtfs's parse package does, plus a Kind
// callers can branch on.
type Error struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

// Format supports %+v the way pkg/errors values do, delegating to the
// wrapped cause's stack trace.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %s\n%+v", e.Kind, e.msg, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

func invalidArgument(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: ErrInvalidArgument, msg: msg, cause: pkgerrors.New(msg)}
}

func internalError(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: ErrInternal, msg: msg, cause: pkgerrors.New(msg)}
}

func wrapError(kind ErrorKind, cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, msg: msg, cause: pkgerrors.Wrap(cause, msg)}
}
