// Package migrations holds the embedded schema migrations, one directory per
// supported backend. The SQL is equivalent across dialects: users, passwords
// and reset_codes relations with unique constraints, supporting indexes and
// cascading foreign keys. Running them is idempotent.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/passvault/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var files embed.FS

// For returns the migration filesystem and the goose dialect name for a
// backend kind.
func For(kind dbx.Kind) (fs.FS, string, error) {
	switch kind {
	case dbx.KindSQLite:
		sub, err := fs.Sub(files, "sqlite")
		return sub, "sqlite3", err
	case dbx.KindPostgres:
		sub, err := fs.Sub(files, "postgres")
		return sub, "postgres", err
	case dbx.KindMySQL:
		sub, err := fs.Sub(files, "mysql")
		return sub, "mysql", err
	default:
		return nil, "", fmt.Errorf("unsupported backend kind: %q", kind)
	}
}
