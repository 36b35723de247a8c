package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const defaultValidity = 24 * time.Hour

func registerUser(t *testing.T, accounts *AccountService) string {
	t.Helper()
	userID, err := accounts.Register(context.Background(), "alice", "Str0ng!pass", "alice@example.com")
	require.NoError(t, err)
	return userID
}

func TestResetCodeService_IssueFormat(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	svc := NewResetCodeService(db, repos, defaultValidity)
	userID := registerUser(t, accounts)

	code, err := svc.Issue(context.Background(), userID)
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^\d{6}$`), code, "codes are exactly six digits, zero-padded")
}

func TestResetCodeService_ValidateHappyPath(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	svc := NewResetCodeService(db, repos, defaultValidity)
	ctx := context.Background()
	userID := registerUser(t, accounts)

	code, err := svc.Issue(ctx, userID)
	require.NoError(t, err)

	ok, err := svc.Validate(ctx, userID, code)
	require.NoError(t, err)
	require.True(t, ok)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	ok, err = svc.Validate(ctx, userID, wrong)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResetCodeService_ValidateNoCode(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	svc := NewResetCodeService(db, repos, defaultValidity)
	userID := registerUser(t, accounts)

	ok, err := svc.Validate(context.Background(), userID, "123456")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResetCodeService_ExpiresAfterValidityWindow(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	svc := NewResetCodeService(db, repos, defaultValidity)
	ctx := context.Background()
	userID := registerUser(t, accounts)

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }

	code, err := svc.Issue(ctx, userID)
	require.NoError(t, err)

	// One second short of the window the code still works.
	svc.now = func() time.Time { return issued.Add(defaultValidity - time.Second) }
	ok, err := svc.Validate(ctx, userID, code)
	require.NoError(t, err)
	require.True(t, ok)

	// At exactly the window boundary it no longer does.
	svc.now = func() time.Time { return issued.Add(defaultValidity) }
	ok, err = svc.Validate(ctx, userID, code)
	require.NoError(t, err)
	require.False(t, ok)

	// And an hour past, certainly not.
	svc.now = func() time.Time { return issued.Add(25 * time.Hour) }
	ok, err = svc.Validate(ctx, userID, code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResetCodeService_NewCodeSupersedesOld(t *testing.T) {
	db, repos := setupDB(t)
	accounts := NewAccountService(db, repos)
	svc := NewResetCodeService(db, repos, defaultValidity)
	ctx := context.Background()
	userID := registerUser(t, accounts)

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }
	first, err := svc.Issue(ctx, userID)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(time.Minute) }
	second, err := svc.Issue(ctx, userID)
	require.NoError(t, err)

	ok, err := svc.Validate(ctx, userID, second)
	require.NoError(t, err)
	require.True(t, ok)

	if first != second {
		ok, err = svc.Validate(ctx, userID, first)
		require.NoError(t, err)
		require.False(t, ok, "superseded code must not validate")
	}
}
