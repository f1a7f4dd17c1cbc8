// ABOUTME: Custom error types for the analysis pipeline
// ABOUTME: Provides the taxonomy separating caller faults, provider faults and internal degradation

package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache: key not found")

// ValidationError represents invalid caller input. It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ProviderError represents a failure of the results provider. Transient
// failures (timeouts, 5xx, rate limits) may be retried; permanent failures
// (bad credentials, quota, rejected term) propagate immediately.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Transient  bool
	Err        error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s: %s error (%d): %s", e.Provider, kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s: %s error: %s", e.Provider, kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// CacheError represents a cache backend failure. It is never fatal to a run;
// callers log it and behave as if the cache missed.
type CacheError struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface
func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CacheError) Unwrap() error {
	return e.Err
}

// PipelineTimeoutError represents a run exceeding its deadline. No partial
// result is written to cache when this is raised.
type PipelineTimeoutError struct {
	Term     string
	Deadline time.Duration
}

// Error implements the error interface
func (e *PipelineTimeoutError) Error() string {
	return fmt.Sprintf("pipeline timed out after %s analyzing %q", e.Deadline, e.Term)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsProvider checks if an error is a ProviderError
func IsProvider(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

// IsTransient checks if an error is a retryable ProviderError
func IsTransient(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Transient
	}
	return false
}

// IsPermanent checks if an error is a non-retryable ProviderError
func IsPermanent(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return !providerErr.Transient
	}
	return false
}

// IsCache checks if an error is a CacheError
func IsCache(err error) bool {
	var cacheErr *CacheError
	return errors.As(err, &cacheErr)
}

// IsTimeout checks if an error is a PipelineTimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *PipelineTimeoutError
	return errors.As(err, &timeoutErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
