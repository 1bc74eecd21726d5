package api

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrMissingFields          = errors.New("all fields are required")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrDeviceNotFound         = errors.New("device not found")
	// ErrNetwork is what every simulated request failure collapses to.
	ErrNetwork      = errors.New("api request failed")
	ErrUnauthorized = errors.New("unauthorized")
)
