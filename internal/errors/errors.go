package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the flow and orchestration boundaries. Every failure
// surfaced to a caller is one of three kinds: rejected locally before any
// network effect, rejected remotely because an identifier is taken, or any
// other dependent-service failure.

// ValidationError reports input rejected locally. No remote call was made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports a remote rejection caused by a duplicate identifier.
// The caller must pick a different one.
type ConflictError struct {
	ID  string
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the ID %q is already taken, please try again with a different ID", e.ID)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// RemoteError reports any other failure from a dependent service. The
// underlying message is surfaced verbatim.
type RemoteError struct {
	Op  string // the operation or step that failed
	Err error
}

func (e *RemoteError) Error() string { return e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsRemote reports whether err is a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
