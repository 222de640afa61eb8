package service

import "errors"

// Service-level errors translated to HTTP statuses by the handlers
var (
	// ErrInvalidCredentials covers every login failure: unknown email, wrong
	// password, unconfirmed account. Callers must not learn which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyRegistered is returned when registering a taken email
	ErrEmailAlreadyRegistered = errors.New("user with this email already exists")

	// ErrInvalidToken covers malformed, expired, blacklisted and rotated-out tokens
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrWeakPassword is returned when the password fails the complexity policy
	ErrWeakPassword = errors.New("password must be at least 8 characters long and contain uppercase, lowercase, and number")

	// ErrInvalidEmail is returned when the email fails format validation
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrAvatarStorage marks failures of the external file storage, as opposed
	// to failures persisting the resulting URL
	ErrAvatarStorage = errors.New("avatar storage failure")
)
