package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden signals that the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRequest signals a request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// KeyPrefix is the default storage key namespace.
const KeyPrefix = "ordersearch:"
