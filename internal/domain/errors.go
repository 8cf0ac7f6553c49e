package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	// Business rule violations.
	ErrExceedsLimit   = errors.New("loan amount exceeds limit")
	ErrLoanClosed     = errors.New("loan is closed")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrDuplicate      = errors.New("already exists")
	ErrNotAuctionable = errors.New("loan is not eligible for auction")
	ErrBranchInUse    = errors.New("branch is still referenced")

	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")

	// Not found.
	ErrNotFound         = errors.New("not found")
	ErrSchemeNotFound   = fmt.Errorf("scheme %w", ErrNotFound)
	ErrRateNotSet       = fmt.Errorf("gold rate %w", ErrNotFound)
	ErrLoanNotFound     = fmt.Errorf("loan %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrBranchNotFound   = fmt.Errorf("branch %w", ErrNotFound)
	ErrVoucherNotFound  = fmt.Errorf("voucher %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
