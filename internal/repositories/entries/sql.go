package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *SQLRepository) Create(ctx context.Context, entry *models.VaultEntry) error {
	query := r.d.Rebind(
		`INSERT INTO passwords (user_id, website, username, secret, date_created, date_modified)
		 VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.Website, entry.Username, entry.Secret, entry.CreatedAt, entry.ModifiedAt)
	if err != nil {
		return r.d.ClassifyError(err)
	}

	return nil
}

func (r *SQLRepository) Get(ctx context.Context, userID, website, username string) (*models.VaultEntry, error) {
	query := r.d.Rebind(
		`SELECT entry_id, user_id, website, username, secret, date_created, date_modified
		 FROM passwords
		 WHERE user_id = ? AND website = ? AND username = ?`)

	entry := &models.VaultEntry{}
	err := r.db.QueryRowContext(ctx, query, userID, website, username).Scan(
		&entry.ID, &entry.UserID, &entry.Website, &entry.Username,
		&entry.Secret, &entry.CreatedAt, &entry.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}

	return entry, nil
}

func (r *SQLRepository) UpdateSecret(ctx context.Context, userID, website, username string, secret []byte, modifiedAt time.Time) error {
	query := r.d.Rebind(
		`UPDATE passwords SET secret = ?, date_modified = ?
		 WHERE user_id = ? AND website = ? AND username = ?`)

	return r.execExpectingRow(ctx, query, secret, modifiedAt, userID, website, username)
}

func (r *SQLRepository) Delete(ctx context.Context, userID, website, username string) error {
	query := r.d.Rebind(
		`DELETE FROM passwords WHERE user_id = ? AND website = ? AND username = ?`)

	return r.execExpectingRow(ctx, query, userID, website, username)
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]models.EntrySummary, error) {
	query := r.d.Rebind(
		`SELECT entry_id, website, username, date_created, date_modified
		 FROM passwords
		 WHERE user_id = ?
		 ORDER BY date_created DESC, entry_id DESC`)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}
	defer rows.Close()

	var summaries []models.EntrySummary
	for rows.Next() {
		var s models.EntrySummary
		if err := rows.Scan(&s.ID, &s.Website, &s.Username, &s.CreatedAt, &s.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}

	return summaries, nil
}

func (r *SQLRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := r.d.Rebind(`DELETE FROM passwords WHERE user_id = ?`)

	// Zero affected rows is fine here: the user may simply have no entries.
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}
	return nil
}

func (r *SQLRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}

	return nil
}
