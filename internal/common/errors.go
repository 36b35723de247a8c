// Package common defines shared constants and sentinel errors used across
// the vault engine layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors. Wrap with details, match with errors.Is.
	ErrValidation = errors.New("validation error")

	// Storage driver errors.
	ErrConnection = errors.New("storage unreachable")
	ErrQuery      = errors.New("malformed query")

	// Crypto errors.
	ErrDecrypt = errors.New("decryption failed")

	// Account state.
	ErrAccountLocked = errors.New("account locked")
)
