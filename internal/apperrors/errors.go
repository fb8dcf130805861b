package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found, or that
// it belongs to another organization (existence is not disclosed).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnbalancedEntry indicates that the debit and credit totals of a proposed
// transaction differ by more than the accepted rounding tolerance.
var ErrUnbalancedEntry = errors.New("ledger entries do not balance")

// ErrAlreadyVoided indicates an attempt to void a transaction that is already VOIDED.
var ErrAlreadyVoided = errors.New("transaction already voided")

// ErrCannotReverseVoided indicates an attempt to reverse a VOIDED transaction.
// Voiding and reversing are mutually exclusive correction paths.
var ErrCannotReverseVoided = errors.New("cannot reverse a voided transaction")

// ErrPersistenceConflict indicates a write conflict (e.g. transaction number
// collision under concurrent posting) that survived all internal retries.
var ErrPersistenceConflict = errors.New("persistence conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the required role in the organization.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside the wrapped cause. Repositories use
// it to report infrastructure failures without leaking driver-level detail.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
