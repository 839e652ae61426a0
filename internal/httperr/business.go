package httperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindConflict        Kind = "CONFLICT"
	KindValidation      Kind = "VALIDATION_ERROR"
	KindAlreadyInactive Kind = "ALREADY_INACTIVE"
	KindStorage         Kind = "STORAGE_FAILURE"
)

// BusinessError is the only error type that leaves the core.
// Code is a stable snake_case identifier for clients; Err keeps the cause
// for logging and is never rendered.
type BusinessError struct {
	Kind Kind
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func NotFound(code string) error        { return New(KindNotFound, code) }
func Forbidden(code string) error       { return New(KindForbidden, code) }
func Conflict(code string) error        { return New(KindConflict, code) }
func Validation(code string) error      { return New(KindValidation, code) }
func AlreadyInactive(code string) error { return New(KindAlreadyInactive, code) }

// Storage wraps a persistence error. Errors that are already typed pass
// through unchanged so a repository can return them from inside a
// transaction callback.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	if IsUniqueViolation(err) || IsExclusionConflict(err) {
		return BusinessError{Kind: KindConflict, Code: "constraint_conflict", Err: err}
	}
	return BusinessError{Kind: KindStorage, Code: "storage_failure", Err: fmt.Errorf("%s: %w", op, err)}
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	if err == nil {
		return ""
	}
	return KindStorage
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// FromLookup maps a single-record read error: a missing row becomes
// NOT_FOUND with code, anything else STORAGE_FAILURE.
func FromLookup(err error, code, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(code)
	}
	return Storage(op, err)
}
