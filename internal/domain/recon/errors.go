package recon

import "errors"

var (
	// ErrAuthenticationFailed means upstream credentials could not be
	// obtained. No partial report can be produced, so the run aborts.
	ErrAuthenticationFailed = errors.New("upstream authentication failed")

	ErrRunNotFound      = errors.New("reconciliation run not found")
	ErrInvalidDateRange = errors.New("from date is after to date")
	ErrNoActiveVenues   = errors.New("no active venues registered")
	ErrValidationFailed = errors.New("validation failed")
)
