package service

import "errors"

// Lookup failures shared by the session and config managers so transports
// can map them without importing either package.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
