package storage

import "errors"

var (
	// ErrUnavailable is returned by every operation of an unauthenticated or
	// unreachable store.
	ErrUnavailable = errors.New("remote storage unavailable")
	// ErrNotFound is returned when a folder or file does not exist.
	ErrNotFound = errors.New("not found in remote storage")
	// ErrNoCredentials means neither secrets nor a credentials file were found.
	ErrNoCredentials = errors.New("no storage credentials configured")
)
