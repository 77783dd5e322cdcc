// Package repository defines error kinds that are reused across the
// repositories and the services built on them.  Every error returned
// from this module wraps exactly one of these kinds, so callers such as
// handlers can distinguish failure scenarios with errors.Is.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced id does not resolve.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a required field is missing or
// malformed, including an unresolvable artist or venue id on show
// creation.  Handlers should translate this into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")

// ErrIntegrity is returned when a stored show references a venue or
// artist that no longer exists.
var ErrIntegrity = errors.New("integrity violation")

// ErrStorage wraps failures of the underlying store: connection,
// statement or commit errors.
var ErrStorage = errors.New("storage failure")

var (
	// ErrVenueNotFound is returned when a venue lookup fails.
	ErrVenueNotFound = fmt.Errorf("venue %w", ErrNotFound)
	// ErrArtistNotFound is returned when an artist lookup fails.
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
)

// storageError tags a driver error with ErrStorage while keeping the
// original error in the chain.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
