// Package resetcodes persists one-time password-reset codes. Rows are
// append-only: a superseding request inserts a new row, and only the newest
// row for a user ever validates.
package resetcodes

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/models"
)

type Repository interface {
	// Create inserts an issued code. Returns common.ErrNotFound when the
	// user does not exist.
	Create(ctx context.Context, code *models.ResetCode) error

	// GetLatestByUser returns the most recently issued code for a user,
	// expired or not, or common.ErrNotFound.
	GetLatestByUser(ctx context.Context, userID string) (*models.ResetCode, error)

	// ExpireAllForUser marks every code of a user expired. Called after a
	// successful reset so no code can replay.
	ExpireAllForUser(ctx context.Context, userID string) error

	// DeleteByUser removes all codes of a user (account removal).
	DeleteByUser(ctx context.Context, userID string) error
}
