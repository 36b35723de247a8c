// Package services implements the domain operations of the vault engine on
// top of the repositories: account directory, reset code lifecycle and the
// encrypted entry store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
)

// referenceHash is a syntactically valid argon2id token that matches no
// password. Verify runs against it when the user row is missing so a failed
// lookup costs the same as a failed comparison.
const referenceHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// AccountService is the account directory: registration, lookups, password
// verification and account removal.
type AccountService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	now   func() time.Time
}

func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repos: repos, now: time.Now}
}

// Register hashes the password and inserts a new user. The user id is a
// random uuid, never derived from username or email, so it stays stable
// under any future rename. Uniqueness is checked by attempting the insert:
// the backend constraint reports common.ErrAlreadyExists.
func (s *AccountService) Register(ctx context.Context, username, password, email string) (string, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    s.now().UTC(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Users(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return "", common.ErrAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// Verify checks a password against the stored hash. An unknown username
// verifies against a reference hash and returns false; it is never treated
// as success and the miss is not observable through response shape.
func (s *AccountService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			cryptox.VerifyPassword(password, referenceHash)
			return false, nil
		}
		return false, fmt.Errorf("error fetching user: %w", err)
	}

	return cryptox.VerifyPassword(password, user.PasswordHash), nil
}

// Lookup returns the full account row by username.
func (s *AccountService) Lookup(ctx context.Context, username string) (*models.User, error) {
	return s.repos.Users(s.db).GetByUsername(ctx, username)
}

// LookupUserID resolves a username to its user id.
func (s *AccountService) LookupUserID(ctx context.Context, username string) (string, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// LookupEmail resolves a user id to the account email.
func (s *AccountService) LookupEmail(ctx context.Context, userID string) (string, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

// LookupByEmail returns the account row registered under email.
func (s *AccountService) LookupByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repos.Users(s.db).GetByEmail(ctx, email)
}

// ExistsByEmail reports whether any account uses email.
func (s *AccountService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ChangePassword re-hashes and overwrites the account password. Vault entry
// ciphertext is untouched: secrets are encrypted with the deployment key,
// not anything derived from the account password.
func (s *AccountService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Users(tx).UpdatePasswordHash(ctx, userID, hash)
	})
}

// ResetPassword overwrites the password hash and expires every outstanding
// reset code in a single transaction. Either both writes land or neither:
// a reset can never leave the password changed with the code still valid.
func (s *AccountService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Users(tx).UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return s.repos.ResetCodes(tx).ExpireAllForUser(ctx, userID)
	})
}

// SetLocked flips the account lockout flag.
func (s *AccountService) SetLocked(ctx context.Context, userID string, locked bool) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Users(tx).SetLocked(ctx, userID, locked)
	})
}

// DeleteAccount removes the user and all dependent rows in one transaction.
// Dependent rows are deleted explicitly first; on backends with enforced FK
// cascade this is redundant but harmless, on the rest it is what makes the
// removal complete.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.ResetCodes(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := s.repos.Entries(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.repos.Users(tx).Delete(ctx, userID)
	})
}
