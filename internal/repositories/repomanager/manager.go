// Package repomanager vends repository implementations bound to a database
// handle (a *sql.DB or an open transaction) and exposes the schema hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/repositories/entries"
	"github.com/dmitrijs2005/passvault/internal/repositories/resetcodes"
	"github.com/dmitrijs2005/passvault/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	ResetCodes(db dbx.DBTX) resetcodes.Repository
}
