package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/passvault/internal/common"
)

func TestAccountService_RegisterAndVerify(t *testing.T) {
	db, repos := setupDB(t)
	svc := NewAccountService(db, repos)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	// Stored credential is a hash, never the password itself.
	user, err := svc.Lookup(ctx, "alice")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
	require.NotContains(t, user.PasswordHash, "Str0ng!pass")

	ok, err := svc.Verify(ctx, "alice", "Str0ng!pass")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Verify(ctx, "alice", "wrong-password")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAccountService_VerifyUnknownUser(t *testing.T) {
	db, repos := setupDB(t)
	svc := NewAccountService(db, repos)

	ok, err := svc.Verify(context.Background(), "ghost", "whatever1!A")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAccountService_RegisterDuplicates(t *testing.T) {
	db, repos := setupDB(t)
	svc := NewAccountService(db, repos)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "0ther!Pass", "other@example.com")
	require.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = svc.Register(ctx, "bob", "0ther!Pass", "alice@example.com")
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestAccountService_Lookups(t *testing.T) {
	db, repos := setupDB(t)
	svc := NewAccountService(db, repos)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)

	gotID, err := svc.LookupUserID(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, userID, gotID)

	email, err := svc.LookupEmail(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", email)

	byEmail, err := svc.LookupByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, userID, byEmail.ID)

	exists, err := svc.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = svc.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = svc.LookupUserID(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestAccountService_ChangePassword(t *testing.T) {
	db, repos := setupDB(t)
	svc := NewAccountService(db, repos)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "Old!pass1", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, userID, "New!pass2"))

	ok, err := svc.Verify(ctx, "alice", "Old!pass1")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.Verify(ctx, "alice", "New!pass2")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAccountService_ResetPassword(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	resets := NewResetCodeService(db, repos, defaultValidity)
	ctx := context.Background()

	userID, err := accounts.Register(ctx, "alice", "Old!pass1", "alice@example.com")
	require.NoError(t, err)

	code, err := resets.Issue(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, accounts.ResetPassword(ctx, userID, "New!pass2"))

	ok, err := accounts.Verify(ctx, "alice", "New!pass2")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = accounts.Verify(ctx, "alice", "Old!pass1")
	require.NoError(t, err)
	require.False(t, ok)

	// The reset expires the code in the same transaction, so it can never
	// validate again.
	ok, err = resets.Validate(ctx, userID, code)
	require.NoError(t, err)
	require.False(t, ok, "code must be dead after the reset")
}

func TestAccountService_SetLocked(t *testing.T) {
	db, repos := setupDB(t)
	svc := NewAccountService(db, repos)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.SetLocked(ctx, userID, true))

	user, err := svc.Lookup(ctx, "alice")
	require.NoError(t, err)
	require.True(t, user.IsLocked)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	entriesSvc := NewEntryService(db, repos, make([]byte, 32))
	resets := NewResetCodeService(db, repos, defaultValidity)
	ctx := context.Background()

	userID, err := accounts.Register(ctx, "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, entriesSvc.Add(ctx, userID, "example.com", "alice", "s3cret"))
	_, err = resets.Issue(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, accounts.DeleteAccount(ctx, userID))

	_, err = accounts.Lookup(ctx, "alice")
	require.ErrorIs(t, err, common.ErrNotFound)

	// Dependent rows are gone with the account.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM passwords`).Scan(&n))
	require.Zero(t, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reset_codes`).Scan(&n))
	require.Zero(t, n)

	// The username is free for re-registration.
	_, err = accounts.Register(ctx, "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)
}
