package store

import "errors"

var (
	ErrInstitutionNotFound = errors.New("institution not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidState        = errors.New("invalid ticket state")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAccessDenied        = errors.New("access denied")
)
