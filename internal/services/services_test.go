package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/storage"
)

// setupDB opens an in-memory backend with the schema applied and returns it
// together with a repository manager for it.
func setupDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = ":memory:"

	db, dialect, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, repomanager.NewSQLRepositoryManager(dialect)
}
