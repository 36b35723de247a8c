package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/repositories/entries"
	"github.com/dmitrijs2005/passvault/internal/repositories/resetcodes"
	"github.com/dmitrijs2005/passvault/internal/repositories/users"
	"github.com/dmitrijs2005/passvault/internal/storage"
)

// SQLRepositoryManager vends dialect-aware repository implementations.
// One manager serves any supported backend; the dialect carries the
// per-backend differences.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a manager for the given dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Entries returns an entries.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLRepository(db, m.dialect)
}

// ResetCodes returns a resetcodes.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) ResetCodes(db dbx.DBTX) resetcodes.Repository {
	return resetcodes.NewSQLRepository(db, m.dialect)
}

// RunMigrations applies the embedded migrations for the manager's backend.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return storage.Migrate(ctx, db, m.dialect.Kind)
}
