package ratelimit

import "errors"

var (
	ErrStoreRequired = errors.New("rate limit store is required")
	ErrInvalidLimit  = errors.New("rate limit must be positive")
	ErrInvalidWindow = errors.New("rate limit window must be positive")
	ErrKeyRequired   = errors.New("rate limit key is required")
)
