package models

import "errors"

// Error kinds returned by the service layer. Controllers map these to HTTP
// status codes with errors.Is; anything unrecognized is treated as internal.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("conflicting state")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
