// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrImmutableRecord = errors.New("record is immutable")

	// Access errors
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrManagerCycle       = errors.New("manager assignment would create a reporting cycle")

	// Team-related errors
	ErrTeamNotFound = errors.New("team not found")

	// Assignment-related errors
	ErrNotAssignable = errors.New("resource does not support assignment")
)
