package domain

import "errors"

var (
	// ErrUnauthenticated covers missing, invalid, expired or revoked tokens,
	// and tokens referencing a user that no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller is authenticated but its role is not in
	// the route's allow-list.
	ErrForbidden = errors.New("forbidden")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUser        = errors.New("invalid user")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidReading  = errors.New("invalid weather reading")
	ErrReadingNotFound = errors.New("weather reading not found")

	ErrInvalidID        = errors.New("invalid document id")
	ErrInvalidDateRange = errors.New("invalid date range")
)
