// Package errors provides typed outcomes for external provider calls so the
// orchestrator can decide between retrying nothing and falling back to
// synthetic data, instead of swallowing everything behind a broad catch.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeGeocodeTimeout   ErrorCode = "GEOCODE_TIMEOUT"
	ErrCodeGeocodeFailed    ErrorCode = "GEOCODE_FAILED"
	ErrCodeGeocodeEmpty     ErrorCode = "GEOCODE_EMPTY"
	ErrCodeDiscoverTimeout  ErrorCode = "DISCOVER_TIMEOUT"
	ErrCodeDiscoverFailed   ErrorCode = "DISCOVER_FAILED"
	ErrCodeDiscoverEmpty    ErrorCode = "DISCOVER_EMPTY"
	ErrCodeProviderDecode   ErrorCode = "PROVIDER_DECODE_FAILED"
	ErrCodeSessionStore     ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeDetailInvalid    ErrorCode = "DETAIL_VALIDATION_FAILED"
)

// Sentinel errors the orchestrator branches on with errors.Is.
var (
	ErrProviderTimeout   = errors.New("provider timeout")
	ErrProviderTransport = errors.New("provider transport error")
	ErrProviderEmpty     = errors.New("provider returned no results")
	ErrProviderDecode    = errors.New("provider response decode failed")
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	sentinel error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the sentinel so errors.Is works across the pipeline.
func (e *StandardError) Unwrap() error {
	return e.sentinel
}

// ==========================
// 2. Error Constructors
// ==========================

// NewGeocodeTimeoutError marks a geocode call that exceeded its deadline.
func NewGeocodeTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeTimeout,
		Message:   "Geocoding API timeout",
		Details:   "call exceeded configured timeout",
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderTimeout,
	}
}

// NewGeocodeFailedError marks a transport or HTTP-status geocode failure.
func NewGeocodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeFailed,
		Message:   "Geocoding API error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderTransport,
	}
}

// NewGeocodeEmptyError marks a geocode response with no usable items.
func NewGeocodeEmptyError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeEmpty,
		Message:   "Geocoding returned no results",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderEmpty,
	}
}

// NewDiscoverTimeoutError marks a discovery call that exceeded its deadline.
func NewDiscoverTimeoutError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDiscoverTimeout,
		Message:   "Discovery API timeout",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderTimeout,
	}
}

// NewDiscoverFailedError marks a transport or HTTP-status discovery failure.
func NewDiscoverFailedError(category string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDiscoverFailed,
		Message:   "Discovery API error",
		Details:   fmt.Sprintf("category: %s, error: %s", category, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderTransport,
	}
}

// NewDiscoverEmptyError marks a search that accumulated no listings across
// all category queries.
func NewDiscoverEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeDiscoverEmpty,
		Message:   "Discovery returned no listings",
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderEmpty,
	}
}

// NewProviderDecodeError marks an unparseable provider payload.
func NewProviderDecodeError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderDecode,
		Message:   "Provider response decode failed",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		sentinel:  ErrProviderDecode,
	}
}

// NewSessionStoreError marks a context store failure. These are logged and
// the request continues with a fresh context.
func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStore,
		Message:   "Session store operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateNotFoundError marks a missing parking-type template.
func NewTemplateNotFoundError(templateID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found in registry",
		Details:   fmt.Sprintf("templateId: %s", templateID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDetailInvalidError marks a formatted detail record that failed schema
// validation.
func NewDetailInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDetailInvalid,
		Message:   "Listing detail failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsTimeout reports whether err is a provider timeout outcome.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsEmpty reports whether err is an empty-result outcome.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrProviderEmpty)
}

// IsRecoverable reports whether the orchestrator can mask err with the
// synthetic-data fallback. Every provider outcome qualifies.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrProviderTimeout) ||
		errors.Is(err, ErrProviderTransport) ||
		errors.Is(err, ErrProviderEmpty) ||
		errors.Is(err, ErrProviderDecode)
}
