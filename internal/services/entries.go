package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
)

// EntryService is the vault entry store. Secrets are encrypted with the
// deployment key before they reach a repository and decrypted only on a
// single-entry Get; listing never touches ciphertext.
type EntryService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	key   []byte
	now   func() time.Time
}

func NewEntryService(db *sql.DB, repos repomanager.RepositoryManager, key []byte) *EntryService {
	return &EntryService{db: db, repos: repos, key: key, now: time.Now}
}

// Add encrypts secret and inserts a new entry for the user. A duplicate
// (website, username) pair for the same user reports common.ErrAlreadyExists.
func (s *EntryService) Add(ctx context.Context, userID, website, username, secret string) error {
	encrypted, err := cryptox.Encrypt([]byte(secret), s.key)
	if err != nil {
		return fmt.Errorf("error encrypting secret: %w", err)
	}

	ts := s.now().UTC()
	entry := &models.VaultEntry{
		UserID:     userID,
		Website:    website,
		Username:   username,
		Secret:     encrypted,
		CreatedAt:  ts,
		ModifiedAt: ts,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Entries(tx).Create(ctx, entry)
	})
}

// Get returns the decrypted secret for the entry identified by
// (userID, website, username), or common.ErrNotFound. A ciphertext that
// fails authentication reports common.ErrDecrypt for that record only.
func (s *EntryService) Get(ctx context.Context, userID, website, username string) (string, error) {
	entry, err := s.repos.Entries(s.db).Get(ctx, userID, website, username)
	if err != nil {
		return "", err
	}

	plaintext, err := cryptox.Decrypt(entry.Secret, s.key)
	if err != nil {
		return "", err
	}

	secret := string(plaintext)
	common.WipeByteArray(plaintext)
	return secret, nil
}

// Update re-encrypts the secret and bumps date_modified. The entry must
// exist and belong to the user, otherwise common.ErrNotFound.
func (s *EntryService) Update(ctx context.Context, userID, website, username, newSecret string) error {
	encrypted, err := cryptox.Encrypt([]byte(newSecret), s.key)
	if err != nil {
		return fmt.Errorf("error encrypting secret: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Entries(tx).UpdateSecret(ctx, userID, website, username, encrypted, s.now().UTC())
	})
}

// Delete removes the entry identified by (userID, website, username).
func (s *EntryService) Delete(ctx context.Context, userID, website, username string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Entries(tx).Delete(ctx, userID, website, username)
	})
}

// List returns entry summaries for the user, newest first. No decryption
// happens here.
func (s *EntryService) List(ctx context.Context, userID string) ([]models.EntrySummary, error) {
	return s.repos.Entries(s.db).ListByUser(ctx, userID)
}

// Exists reports whether the entry tuple is present without decrypting it.
func (s *EntryService) Exists(ctx context.Context, userID, website, username string) (bool, error) {
	_, err := s.repos.Entries(s.db).Get(ctx, userID, website, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
