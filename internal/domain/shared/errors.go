package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for transport mapping and retry policy.
type ErrorKind string

const (
	// ErrKindValidation marks malformed or out-of-range input, caught before any write.
	ErrKindValidation ErrorKind = "VALIDATION"
	// ErrKindNotFound marks a missing referenced entity.
	ErrKindNotFound ErrorKind = "NOT_FOUND"
	// ErrKindConflict marks a state-machine or invariant violation. Conflicts
	// caused by lock contention are the only retryable errors.
	ErrKindConflict ErrorKind = "CONFLICT"
	// ErrKindDataIntegrity marks an invariant violated despite guards. It
	// signals a bug, not a user error.
	ErrKindDataIntegrity ErrorKind = "DATA_INTEGRITY"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error of the given kind
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation-kind domain error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(ErrKindValidation, code, message)
}

// NewNotFoundError creates a not-found-kind domain error
func NewNotFoundError(code, message string) *DomainError {
	return NewDomainError(ErrKindNotFound, code, message)
}

// NewConflictError creates a conflict-kind domain error
func NewConflictError(code, message string) *DomainError {
	return NewDomainError(ErrKindConflict, code, message)
}

// NewDataIntegrityError creates a data-integrity-kind domain error
func NewDataIntegrityError(code, message string) *DomainError {
	return NewDomainError(ErrKindDataIntegrity, code, message)
}

// Common domain errors
var (
	ErrNotFound            = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConflictError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewConflictError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewConflictError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// KindOf returns the kind of err when it is (or wraps) a DomainError,
// and false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	var fe *FieldValidationError
	if errors.As(err, &fe) {
		return ErrKindValidation, true
	}
	return "", false
}

// IsValidation reports whether err is a validation-kind domain error
func IsValidation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrKindValidation
}

// IsNotFound reports whether err is a not-found-kind domain error
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrKindNotFound
}

// IsConflict reports whether err is a conflict-kind domain error
func IsConflict(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrKindConflict
}

// IsDataIntegrity reports whether err is a data-integrity-kind domain error
func IsDataIntegrity(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrKindDataIntegrity
}

// FieldErrors maps a field name to the validation messages raised for it.
type FieldErrors map[string][]string

// Add appends a message for the given field
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// HasErrors reports whether any field has a message
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// FieldValidationError is a validation error carrying per-field messages.
// It surfaces before any write begins.
type FieldValidationError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields"`
}

// Error implements the error interface
func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s (%d field(s))", e.Message, len(e.Fields))
}

// NewFieldValidationError creates a FieldValidationError from collected field errors
func NewFieldValidationError(message string, fields FieldErrors) *FieldValidationError {
	return &FieldValidationError{
		Code:    "VALIDATION_FAILED",
		Message: message,
		Fields:  fields,
	}
}
