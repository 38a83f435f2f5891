// Package errors defines all exported error sentinels for the phogen module.
//
// This is the single source of truth for error values. Both the top-level
// phogen package and the gen package import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Configuration errors. These are reported before any hashing starts.
var (
	ErrUnknownFirstOrderHash  = errors.New("phogen: unknown first-order hash")
	ErrUnknownSecondOrderHash = errors.New("phogen: unknown second-order hash")
	ErrUnknownKeyType         = errors.New("phogen: unknown key type")
	ErrInvalidBucketRatio     = errors.New("phogen: bucket ratio must be in (0, 1]")
	ErrInvalidMaxAttempts     = errors.New("phogen: max attempts must be at least 1")
)

// Build errors.
var (
	// ErrPlacementExhausted is returned when a bucket's seed search burns
	// through the configured attempt budget without finding a collision-free
	// placement. The underlying search is Las Vegas: unbounded in theory,
	// capped here so pathological inputs fail instead of hanging.
	ErrPlacementExhausted = errors.New("phogen: placement seed search exhausted attempt budget")
)

// Codegen errors.
var (
	ErrUnknownLanguage = errors.New("phogen: unknown output language")
	ErrNoTemplate      = errors.New("phogen: no source template for hash function")
)
