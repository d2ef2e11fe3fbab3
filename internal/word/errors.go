package word

import "errors"

var (
	// ErrConnection: the store is unreachable or MONGODB_URI is not configured.
	ErrConnection = errors.New("store connection failed")
	// ErrStoreWrite and ErrStoreRead wrap operation-level store failures.
	ErrStoreWrite = errors.New("store write failed")
	ErrStoreRead  = errors.New("store read failed")
	// ErrMalformedRequest: the submission body is not valid JSON.
	ErrMalformedRequest = errors.New("malformed request body")
	ErrInvalidInput     = errors.New("origin and translation are required")
	// ErrNotFound is a negative lookup result, not a store failure.
	ErrNotFound = errors.New("word not found")
)
