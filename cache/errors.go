package cache

import "errors"

// Sentinel errors for store operations.
// Use errors.Is() to check for these specific conditions.
var (
	// ErrNotFound is returned when a key doesn't exist or has expired.
	// This is not a fatal error - callers should treat it as a cache miss.
	ErrNotFound = errors.New("cache: key not found")

	// ErrInvalidTTL is returned when a TTL value is negative.
	ErrInvalidTTL = errors.New("cache: invalid TTL")
)
