package feeds

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrForbidden       = errors.New("platform access forbidden")
	ErrRateLimited     = errors.New("platform rate limit exceeded")
	ErrNotFound        = errors.New("platform endpoint not found")
	ErrUpstream        = errors.New("platform request failed")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrInvalidSort     = errors.New("invalid sort")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrNotConnected    = errors.New("platform not connected")
)

// UpstreamError is returned for every failed call to an external platform.
// Kind is one of ErrForbidden, ErrRateLimited, ErrNotFound, ErrUpstream or
// ErrInvalidResponse; StatusCode is 0 when no response was received.
type UpstreamError struct {
	Platform   string
	Operation  string
	StatusCode int
	Kind       error
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Platform, e.Operation, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindForStatus maps an upstream HTTP status to an error category.
func KindForStatus(status int) error {
	switch status {
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrUpstream
	}
}

func statusError(platform, operation string, status int) *UpstreamError {
	return &UpstreamError{
		Platform:   platform,
		Operation:  operation,
		StatusCode: status,
		Kind:       KindForStatus(status),
	}
}

func transportError(platform, operation string, err error) *UpstreamError {
	return &UpstreamError{
		Platform:  platform,
		Operation: operation,
		Kind:      ErrUpstream,
		Err:       err,
	}
}
