package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingLocation        = errors.New("missing location")
	ErrPlaceNotFound          = errors.New("place not found")
	ErrUpstreamUnavailable    = errors.New("upstream unavailable")
	ErrIncompleteUpstreamData = errors.New("incomplete upstream data")
)

// UpstreamError describes a failed call to an external provider. It matches
// ErrUpstreamUnavailable with errors.Is.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, ErrUpstreamUnavailable)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}
