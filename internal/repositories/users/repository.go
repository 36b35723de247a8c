// Package users persists account rows.
package users

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/models"
)

type Repository interface {
	// Create inserts a new user. Returns common.ErrAlreadyExists when the
	// username or email is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns common.ErrNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns common.ErrNotFound when no such user exists.
	GetByID(ctx context.Context, userID string) (*models.User, error)

	// GetByEmail returns common.ErrNotFound when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePasswordHash overwrites the stored hash for a user.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error

	// SetLocked flips the lockout flag.
	SetLocked(ctx context.Context, userID string, locked bool) error

	// Delete removes the user row. Dependent rows are removed by FK cascade
	// or explicitly by the caller inside the same transaction.
	Delete(ctx context.Context, userID string) error
}
