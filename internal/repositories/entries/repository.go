// Package entries persists vault entries. Every query includes the owning
// user_id in its predicate, so one user can never see another's rows.
package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/passvault/internal/models"
)

type Repository interface {
	// Create inserts an entry. Returns common.ErrAlreadyExists when the
	// (user, website, username) tuple is taken, common.ErrNotFound when the
	// owning user does not exist.
	Create(ctx context.Context, entry *models.VaultEntry) error

	// Get returns common.ErrNotFound when no entry matches the tuple.
	Get(ctx context.Context, userID, website, username string) (*models.VaultEntry, error)

	// UpdateSecret replaces the encrypted secret and bumps date_modified.
	// date_created is never touched.
	UpdateSecret(ctx context.Context, userID, website, username string, secret []byte, modifiedAt time.Time) error

	// Delete removes one entry by its caller-visible identity.
	Delete(ctx context.Context, userID, website, username string) error

	// ListByUser returns entry summaries, newest first, without secrets.
	ListByUser(ctx context.Context, userID string) ([]models.EntrySummary, error)

	// DeleteByUser removes all entries of a user. Used by account removal on
	// backends where FK cascade cannot be relied on.
	DeleteByUser(ctx context.Context, userID string) error
}
