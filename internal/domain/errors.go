package domain

import "errors"

// Sentinel errors for the domain. Repositories and services wrap these with
// context; handlers map them to HTTP statuses.
var (
	// ErrUnauthorized means no active identity holds the presented token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotActive means the entity exists but its session is already
	// deactivated.
	ErrNotActive = errors.New("not active")

	// ErrInvalidCredentials covers a wrong password and a tenant without a
	// login account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is a lost uniqueness race, typically on an allocated id.
	ErrConflict = errors.New("conflict")

	// ErrCounterExhausted means a day's id counter ran past 9999.
	ErrCounterExhausted = errors.New("id counter exhausted for day")

	// ErrValidation marks semantically invalid input.
	ErrValidation = errors.New("validation failed")
)
