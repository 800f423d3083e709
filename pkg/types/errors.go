package types

import (
	"errors"
	"fmt"
)

// FetchError reports a failed read. Callers degrade to an empty or stale
// list with an error message; a FetchError never crashes a view.
type FetchError struct {
	Collection string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Write operation names carried by WriteError.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// WriteError reports a failed create, update, or delete. It must reach the
// initiating action; local state is only changed after the write succeeds.
type WriteError struct {
	Collection string
	Op         string
	ID         string
	Err        error
}

func (e *WriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// AuthError reports a failed login. Its message is shown to the user as is.
type AuthError struct {
	Identifier string
	Err        error
}

func (e *AuthError) Error() string { return e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("insufficient role")
)

// Entity validation errors.
var (
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrTrackingRequired = errors.New("shipping requires a tracking number")
	ErrInUse            = errors.New("record is referenced by other records")
)

// IsWriteError reports whether err carries a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// IsFetchError reports whether err carries a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
