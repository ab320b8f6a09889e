package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration indicates analysis options or lexicon overrides
	// are malformed. It is the only error the analysis core reports.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedType indicates an unknown input format or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Provider Errors.

	// ErrProviderDisabled indicates the provider has no API key configured.
	ErrProviderDisabled = errors.New("provider disabled")

	// ErrProviderUnknown indicates a provider name that is not registered.
	ErrProviderUnknown = errors.New("unknown provider")

	// ErrUnsupportedMediaType indicates the provider cannot search this media type.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrRateLimited indicates the provider API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized indicates the provider rejected the API key.
	ErrUnauthorized = errors.New("unauthorized")
)

// ConfigError reports which option or lexicon entry was rejected.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewConfigError builds a ConfigError for the given field.
func NewConfigError(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// APIError represents a non-2xx response from a media provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	URL        string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d)", e.Provider, e.StatusCode)
}

// Unwrap maps well-known status codes onto sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}

// IsUnauthorized returns true if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited returns true if the error is a rate limit response.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
