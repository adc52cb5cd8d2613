package metadata

import "errors"

var (
	// ErrNotFound indicates no acceptable match exists after all search
	// strategies were exhausted.
	ErrNotFound = errors.New("no acceptable metadata match")

	// ErrProviderUnavailable indicates missing credentials or that every
	// query against the provider failed.
	ErrProviderUnavailable = errors.New("metadata provider unavailable")
)
