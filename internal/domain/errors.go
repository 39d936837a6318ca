package domain

import "errors"

var (
	// ErrInvalidInput indicates a required field was missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering an already-taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("user not found")
	// ErrMessageNotFound is returned when no message matches the given id.
	ErrMessageNotFound = errors.New("message not found")
	// ErrUnauthorized covers both a missing/invalid token and an ownership
	// failure; both surface as 401 at the HTTP layer.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken indicates a token that failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
)
