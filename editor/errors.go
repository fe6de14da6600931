package editor

import "fmt"

// ErrCode represents the collection of errors that may be returned by the
// editing layer.
type ErrCode int

const (
	// InternalErr indicates an unknown, internal error has occurred.
	InternalErr ErrCode = iota

	// NoTransactionErr indicates a mutating operation was invoked outside
	// a transaction.
	NoTransactionErr

	// DetachedNodeErr indicates the operation referenced a node that has
	// been removed from the document or never existed.
	DetachedNodeErr

	// MissingProjectionErr indicates a node exists in the model but its
	// rendered element could not be found. The projection is expected to
	// cover every attached node, so this is an invariant violation.
	MissingProjectionErr

	// OutOfBoundsErr indicates a row or column index was outside the
	// valid range for its table, or a cell was found outside valid
	// bounds. This signals a corrupted or inconsistently edited grid.
	OutOfBoundsErr

	// WrongKindErr indicates a node of one kind was found where another
	// kind was expected.
	WrongKindErr
)

// Error is the error type returned by the editing layer. All errors are
// fatal to the in-progress transaction; none are retried and no partial
// mutation is left committed.
type Error struct {
	Code    ErrCode
	Message string
}

func (err *Error) Error() string {
	return fmt.Sprintf("editor error (code: %d): %v", err.Code, err.Message)
}

// IsInternal returns true if err is an InternalErr.
func IsInternal(err error) bool { return hasCode(err, InternalErr) }

// IsDetached returns true if err is a DetachedNodeErr.
func IsDetached(err error) bool { return hasCode(err, DetachedNodeErr) }

// IsMissingProjection returns true if err is a MissingProjectionErr.
func IsMissingProjection(err error) bool { return hasCode(err, MissingProjectionErr) }

// IsOutOfBounds returns true if err is an OutOfBoundsErr.
func IsOutOfBounds(err error) bool { return hasCode(err, OutOfBoundsErr) }

// IsWrongKind returns true if err is a WrongKindErr.
func IsWrongKind(err error) bool { return hasCode(err, WrongKindErr) }

// IsNoTransaction returns true if err is a NoTransactionErr.
func IsNoTransaction(err error) bool { return hasCode(err, NoTransactionErr) }

func hasCode(err error, code ErrCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}

func internalError(f string, a ...interface{}) *Error {
	return &Error{Code: InternalErr, Message: fmt.Sprintf(f, a...)}
}

func noTransactionError(op string) *Error {
	return &Error{Code: NoTransactionErr, Message: op + " requires an active transaction"}
}

func detachedNodeError(f string, a ...interface{}) *Error {
	return &Error{Code: DetachedNodeErr, Message: fmt.Sprintf(f, a...)}
}

func missingProjectionError(f string, a ...interface{}) *Error {
	return &Error{Code: MissingProjectionErr, Message: fmt.Sprintf(f, a...)}
}

func outOfBoundsError(f string, a ...interface{}) *Error {
	return &Error{Code: OutOfBoundsErr, Message: fmt.Sprintf(f, a...)}
}

func wrongKindError(want, got string) *Error {
	return &Error{Code: WrongKindErr, Message: fmt.Sprintf("expected %s node, found %s", want, got)}
}
