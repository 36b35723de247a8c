package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
)

// ResetCodeService drives the per-user reset code state machine:
// NoActiveCode -> CodeIssued -> Consumed | Expired. Issuing appends a row;
// only the newest row can ever validate, so an older code is dead the moment
// a newer one exists. Consumption happens inside the account reset
// transaction (AccountService.ResetPassword), never as a separate write.
type ResetCodeService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	validity time.Duration
	now      func() time.Time
}

func NewResetCodeService(db *sql.DB, repos repomanager.RepositoryManager, validity time.Duration) *ResetCodeService {
	return &ResetCodeService{db: db, repos: repos, validity: validity, now: time.Now}
}

// Issue generates a random six-digit code and stores it with the current
// timestamp. Earlier rows are left in place; they are superseded, not erased.
func (s *ResetCodeService) Issue(ctx context.Context, userID string) (string, error) {
	code, err := common.MakeResetCode()
	if err != nil {
		return "", fmt.Errorf("error generating code: %w", err)
	}

	row := &models.ResetCode{
		UserID:   userID,
		Code:     code,
		IssuedAt: s.now().UTC(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.ResetCodes(tx).Create(ctx, row)
	})
	if err != nil {
		return "", fmt.Errorf("error storing code: %w", err)
	}

	return code, nil
}

// Validate reports whether submitted matches the newest code issued for the
// user, the code is not consumed, and strictly less than the validity window
// has elapsed since issuance.
func (s *ResetCodeService) Validate(ctx context.Context, userID, submitted string) (bool, error) {
	latest, err := s.repos.ResetCodes(s.db).GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error fetching code: %w", err)
	}

	if latest.Expired {
		return false, nil
	}
	if s.now().Sub(latest.IssuedAt) >= s.validity {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(latest.Code), []byte(submitted)) == 1, nil
}
