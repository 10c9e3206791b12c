// Package shared contains the error taxonomy used across the pool domain
// packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// Ranking failure kinds. Each one wraps a base error so callers may match
// either the precise kind or the broader category.
var (
	// ErrMissingRequiredField means a mandatory input (season, seasonStart) was absent.
	ErrMissingRequiredField = fmt.Errorf("missing required field: %w", ErrInvalidInput)

	// ErrDataUnavailable means a mandatory upstream fetch failed.
	ErrDataUnavailable = fmt.Errorf("data unavailable: %w", ErrServiceUnavailable)

	// ErrTeamNotFound means a match references a team id absent from the catalog.
	ErrTeamNotFound = fmt.Errorf("team not found: %w", ErrNotFound)
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "ranking", "scoring", "pool"
	Op      string // Operation that failed, e.g., "GetRanking"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// MissingRequiredField reports an absent mandatory input.
func MissingRequiredField(op, field string) *DomainError {
	return NewDomainError("ranking", op, ErrMissingRequiredField, "missing required field "+field)
}

// DataUnavailable reports a failed mandatory fetch of source.
func DataUnavailable(op, source string, err error) *DomainError {
	return WrapError("ranking", op, ErrDataUnavailable, "could not load "+source, err)
}

// TeamNotFound reports a match that references an unknown team.
func TeamNotFound(op string, matchID, teamID int) *DomainError {
	return NewDomainError("ranking", op, ErrTeamNotFound,
		fmt.Sprintf("team %d referenced by match %d is not in the catalog", teamID, matchID))
}

// IsMissingRequiredField checks if the error is a missing-input error.
func IsMissingRequiredField(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

// IsDataUnavailable checks if the error is a failed mandatory fetch.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

// IsTeamNotFound checks if the error is an unknown team reference.
func IsTeamNotFound(err error) bool {
	return errors.Is(err, ErrTeamNotFound)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidFormat)
}

// IsRetryable checks if the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrTimeout)
}
