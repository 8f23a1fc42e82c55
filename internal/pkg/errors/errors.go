package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidWindow rejects non-positive lookback windows before aggregation.
	ErrInvalidWindow = errors.New("invalid lookback window")
	// ErrVersionConflict signals a concurrent profile merge detected by the
	// optimistic version check. The caller retries; the core never retries
	// silently.
	ErrVersionConflict = errors.New("profile version conflict")
	// ErrDataUnavailable signals a collaborator read failure or timeout.
	// Aggregation falls back to documented defaults instead of failing.
	ErrDataUnavailable = errors.New("data unavailable")
)
