package errors

import (
	"errors"
)

var (
	// ErrEmailAlreadyRegistered is returned when a registration reuses an email.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials is returned when a local login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthenticationFailed is returned when the remote API rejects a login.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrStorageUnavailable is returned when the local cache database cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrEmptyCart is returned when an order is placed with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
