package dbx

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// Postgres SQLSTATE codes (pgconn reports these as strings).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MySQL error numbers.
const (
	myUniqueViolation     = 1062
	myForeignKeyViolation = 1452
)

// SQLite extended result codes.
const (
	liteConstraintPrimaryKey = 1555
	liteConstraintUnique     = 2067
	liteConstraintForeignKey = 787
)

// ClassifyError maps a driver error onto the domain taxonomy:
//
//   - uniqueness violations   -> common.ErrAlreadyExists
//   - foreign-key violations  -> common.ErrNotFound (the referenced row is gone)
//   - unreachable backend     -> common.ErrConnection
//   - anything else           -> wrapped common.ErrQuery
//
// Nothing above the repository layer ever sees a backend-specific error type.
func (d Dialect) ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return common.ErrAlreadyExists
		case pgForeignKeyViolation:
			return common.ErrNotFound
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myUniqueViolation:
			return common.ErrAlreadyExists
		case myForeignKeyViolation:
			return common.ErrNotFound
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case liteConstraintPrimaryKey, liteConstraintUnique:
			return common.ErrAlreadyExists
		case liteConstraintForeignKey:
			return common.ErrNotFound
		}
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}

	return fmt.Errorf("%w: %v", common.ErrQuery, err)
}
