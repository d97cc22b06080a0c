package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a contract violation raised by the SDK
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidArgument      = "INVALID_ARGUMENT"
	ErrCodeNullReference        = "NULL_REFERENCE"
	ErrCodeAlreadySet           = "ALREADY_SET"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeTooManyItems         = "TOO_MANY_ITEMS"
	ErrCodeInternalConsistency  = "INTERNAL_CONSISTENCY"
	ErrCodeActivityNotFound     = "ACTIVITY_NOT_FOUND"
	ErrCodeImageNotFound        = "IMAGE_NOT_FOUND"
	ErrCodePackageNotFound      = "PACKAGE_NOT_FOUND"
)

func NewInvalidArgumentError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewNullReferenceError(name string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNullReference,
		Message: fmt.Sprintf("%s is required", name),
	}
}

func NewAlreadySetError(name string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAlreadySet,
		Message: fmt.Sprintf("%s is already set", name),
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s not set", field),
	}
}

func NewTooManyItemsError(limit int) *DomainError {
	return &DomainError{
		Code:    ErrCodeTooManyItems,
		Message: fmt.Sprintf("> %d line item", limit),
	}
}

// NewInternalConsistencyError marks a decoded payload that violates an invariant the
// builders guarantee. The validation failure is kept as the cause.
func NewInternalConsistencyError(what string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInternalConsistency,
		Message: fmt.Sprintf("invalid %s", what),
		Err:     err,
	}
}

func NewActivityNotFoundError(action string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeActivityNotFound,
		Message: fmt.Sprintf("no activity found to handle %s", action),
		Err:     err,
	}
}

func NewImageNotFoundError(detail string) *DomainError {
	return &DomainError{
		Code:    ErrCodeImageNotFound,
		Message: fmt.Sprintf("image not found: %s", detail),
	}
}

func NewPackageNotFoundError(pkg string) *DomainError {
	return &DomainError{
		Code:    ErrCodePackageNotFound,
		Message: fmt.Sprintf("package %s not found", pkg),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code.
// The outermost DomainError in the chain decides.
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
