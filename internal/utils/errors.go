package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidStock       = errors.New("INVALID_STOCK")
	ErrAlreadySelected    = errors.New("ALREADY_SELECTED")
	ErrSelectionInFlight  = errors.New("SELECTION_IN_FLIGHT")
	ErrNotSelected        = errors.New("NOT_SELECTED")
	ErrSessionExpired     = errors.New("SESSION_EXPIRED")
	ErrSessionNotFound    = errors.New("SESSION_NOT_FOUND")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrCategoryRequired   = errors.New("CATEGORY_REQUIRED")
	ErrDeleteNotConfirmed = errors.New("DELETE_NOT_CONFIRMED")
	ErrNotFound           = errors.New("NOT_FOUND")
)
