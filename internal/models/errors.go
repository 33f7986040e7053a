package models

import "errors"

// Error kinds shared by every layer. Callers branch on them with errors.Is.
var (
	// ErrInvalidArgument indicates a missing or malformed input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates the referenced row does not exist
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates the backing store is unreachable or not configured
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error carries a human readable message alongside one of the error kinds
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// InvalidArgument builds an ErrInvalidArgument error with msg
func InvalidArgument(msg string) error {
	return &Error{Kind: ErrInvalidArgument, Msg: msg}
}

// NotFound builds an ErrNotFound error with msg
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// StoreUnavailable builds an ErrStoreUnavailable error with msg
func StoreUnavailable(msg string) error {
	return &Error{Kind: ErrStoreUnavailable, Msg: msg}
}

// Message returns the user facing message of err, falling back to err.Error()
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
