package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Common domain errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("entity not found")
	ErrNotConfigured   = errors.New("feature not configured")
)

// TimeoutError is returned when a remote fetch exceeded its deadline.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// RemoteServiceError is returned when a remote page answers with a non-2xx status.
type RemoteServiceError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s returned error status %d - %s", e.URL, e.StatusCode, e.Reason)
}

// ExtractionError means a structural anchor was missing from a fetched page,
// which usually means the upstream layout changed.
type ExtractionError struct {
	Source string
	Anchor string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: anchor %q not found", e.Source, e.Anchor)
}

// NewExtractionError is a small helper used by the extractors.
func NewExtractionError(source, anchor string) error {
	return &ExtractionError{Source: source, Anchor: anchor}
}
