package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP statuses.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict with current state")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSessionExpired    = errors.New("session expired")
	ErrInvalidTransition = errors.New("invalid status transition")
)
