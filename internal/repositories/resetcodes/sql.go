package resetcodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/models"
)

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, code *models.ResetCode) error {
	query := r.d.Rebind(
		`INSERT INTO reset_codes (user_id, code, issued_at, expired)
		 VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, code.UserID, code.Code, code.IssuedAt, code.Expired)
	if err != nil {
		return r.d.ClassifyError(err)
	}

	return nil
}

func (r *SQLRepository) GetLatestByUser(ctx context.Context, userID string) (*models.ResetCode, error) {
	// code_id breaks ties between codes issued within the same timestamp tick.
	query := r.d.Rebind(
		`SELECT code_id, user_id, code, issued_at, expired
		 FROM reset_codes
		 WHERE user_id = ?
		 ORDER BY issued_at DESC, code_id DESC
		 LIMIT 1`)

	code := &models.ResetCode{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&code.ID, &code.UserID, &code.Code, &code.IssuedAt, &code.Expired)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}

	return code, nil
}

func (r *SQLRepository) ExpireAllForUser(ctx context.Context, userID string) error {
	query := r.d.Rebind(`UPDATE reset_codes SET expired = ? WHERE user_id = ?`)

	if _, err := r.db.ExecContext(ctx, query, true, userID); err != nil {
		return fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}
	return nil
}

func (r *SQLRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := r.d.Rebind(`DELETE FROM reset_codes WHERE user_id = ?`)

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}
	return nil
}
