// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents an input error (bad URL shape, bad range).
// Requests failing validation are rejected before a run starts.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchError represents a failed HTTP page fetch (timeout, non-2xx).
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch failed for %s: HTTP %d %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch failed for %s: %s", e.URL, e.Message)
}

// NavigationError represents a failed browser navigation (non-2xx response
// or content selector wait timeout).
type NavigationError struct {
	URL     string
	Message string
}

// Error implements the error interface
func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s: %s", e.URL, e.Message)
}

// FatalError represents a run-level failure outside the per-item boundary,
// such as a fetcher that cannot be initialized. It aborts the whole run.
type FatalError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error during %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the wrapped cause.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsNavigation checks if an error is a NavigationError
func IsNavigation(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// IsFatal checks if an error is a FatalError
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
