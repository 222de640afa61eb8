package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrFingerprintMismatch is returned when a refresh fingerprint swap loses the
	// compare-and-set race or presents a stale fingerprint
	ErrFingerprintMismatch = errors.New("refresh token fingerprint does not match")
)
