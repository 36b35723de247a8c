package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/models"
)

// SQLRepository implements Repository for every supported backend. Queries
// are written once with '?' placeholders; the dialect rebinds them and
// classifies driver errors.
type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) error {
	query := r.d.Rebind(
		`INSERT INTO users (user_id, username, password_hash, email, date_created, is_locked)
		 VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Email, user.CreatedAt, user.IsLocked)
	if err != nil {
		return r.d.ClassifyError(err)
	}

	return nil
}

const selectUser = `SELECT user_id, username, password_hash, email, date_created, is_locked FROM users`

func (r *SQLRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt, &user.IsLocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", r.d.ClassifyError(err))
	}
	return user, nil
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.d.Rebind(selectUser + ` WHERE username = ?`)
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := r.d.Rebind(selectUser + ` WHERE user_id = ?`)
	return r.scanUser(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := r.d.Rebind(selectUser + ` WHERE email = ?`)
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	query := r.d.Rebind(`UPDATE users SET password_hash = ? WHERE user_id = ?`)
	return r.execExpectingRow(ctx, query, passwordHash, userID)
}

func (r *SQLRepository) SetLocked(ctx context.Context, userID string, locked bool) error {
	query := r.d.Rebind(`UPDATE users SET is_locked = ? WHERE user_id = ?`)
	return r.execExpectingRow(ctx, query, locked, userID)
}

func (r *SQLRepository) Delete(ctx context.Context, userID string) error {
	query := r.d.Rebind(`DELETE FROM users WHERE user_id = ?`)
	return r.execExpectingRow(ctx, query, userID)
}

// execExpectingRow runs a mutation that must touch exactly one user row and
// maps zero affected rows to common.ErrNotFound.
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
