package driver

import "errors"

var (
	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.New("driver: already initialized")

	// ErrNotInitialized indicates Refresh was called before Initialize.
	ErrNotInitialized = errors.New("driver: refresh before initialize")
)
