// Package engine is the caller-facing facade of the vault: it composes the
// account directory, the reset code service and the entry store into the
// use cases a GUI or CLI collaborator invokes. Input validation happens
// here, before anything touches storage.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/auth"
	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/services"
	"github.com/dmitrijs2005/passvault/internal/validation"
)

// Session is what a successful login hands back to the front-end.
type Session struct {
	UserID   string
	Username string
	Token    string
}

type Engine struct {
	log      logging.Logger
	accounts *services.AccountService
	entries  *services.EntryService
	resets   *services.ResetCodeService
	mailer   ResetMailer

	sessionSecret []byte
	sessionTTL    time.Duration
}

func New(
	cfg *config.Config,
	log logging.Logger,
	accounts *services.AccountService,
	entries *services.EntryService,
	resets *services.ResetCodeService,
	mailer ResetMailer,
) *Engine {
	return &Engine{
		log:           log,
		accounts:      accounts,
		entries:       entries,
		resets:        resets,
		mailer:        mailer,
		sessionSecret: []byte(cfg.SessionSecret),
		sessionTTL:    cfg.SessionTokenValidityDuration,
	}
}

// Register creates a new account. The password must match its confirmation
// and satisfy the complexity policy; username and email must be well formed
// and not yet taken.
func (e *Engine) Register(ctx context.Context, username, password, confirmPassword, email string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}
	if !validation.PasswordsMatch(password, confirmPassword) {
		return "", fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if err := validation.ValidatePasswordComplexity(password); err != nil {
		return "", err
	}

	userID, err := e.accounts.Register(ctx, username, password, email)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			e.log.Warn(ctx, "registration rejected, username or email taken", "username", username)
			return "", common.ErrAlreadyExists
		}
		e.log.Error(ctx, "registration failed", "error", err)
		return "", common.ErrInternal
	}

	e.log.Info(ctx, "user registered", "user_id", userID, "username", username)
	return userID, nil
}

// Login verifies credentials and returns a signed session. A wrong password,
// an unknown username and a malformed input all report the same
// common.ErrUnauthorized, so nothing about account existence leaks.
func (e *Engine) Login(ctx context.Context, username, password string) (*Session, error) {
	if validation.ValidateUsername(username) != nil || password == "" {
		return nil, common.ErrUnauthorized
	}

	ok, err := e.accounts.Verify(ctx, username, password)
	if err != nil {
		e.log.Error(ctx, "credential check failed", "error", err)
		return nil, common.ErrInternal
	}
	if !ok {
		e.log.Warn(ctx, "failed login attempt", "username", username)
		return nil, common.ErrUnauthorized
	}

	user, err := e.accounts.Lookup(ctx, username)
	if err != nil {
		e.log.Error(ctx, "user lookup failed after verify", "error", err)
		return nil, common.ErrInternal
	}

	// Only reachable with correct credentials, so reporting the lockout
	// reveals nothing to a guesser.
	if user.IsLocked {
		e.log.Warn(ctx, "login attempt on locked account", "user_id", user.ID)
		return nil, common.ErrAccountLocked
	}

	token, err := auth.GenerateToken(user.ID, e.sessionSecret, e.sessionTTL)
	if err != nil {
		e.log.Error(ctx, "session token generation failed", "error", err)
		return nil, common.ErrInternal
	}

	e.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &Session{UserID: user.ID, Username: user.Username, Token: token}, nil
}

// VerifySession parses a session token and returns the user id it carries.
func (e *Engine) VerifySession(tokenString string) (string, error) {
	userID, err := auth.GetUserIDFromToken(tokenString, e.sessionSecret)
	if err != nil {
		return "", common.ErrUnauthorized
	}
	return userID, nil
}

// RequestPasswordReset issues a reset code and hands it to the mailer.
// The outcome is deliberately the same whether or not the email is
// registered: "if the account exists you will receive a code".
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	user, err := e.accounts.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			e.log.Info(ctx, "reset requested for unknown email")
			return nil
		}
		e.log.Error(ctx, "reset request lookup failed", "error", err)
		return common.ErrInternal
	}

	code, err := e.resets.Issue(ctx, user.ID)
	if err != nil {
		e.log.Error(ctx, "reset code issue failed", "error", err)
		return common.ErrInternal
	}

	if err := e.mailer.SendResetCode(ctx, user.Email, user.Username, code); err != nil {
		// Delivery failure must not reveal that the account exists; the
		// user can simply request another code.
		e.log.Error(ctx, "reset code delivery failed", "user_id", user.ID, "error", err)
		return nil
	}

	e.log.Info(ctx, "reset code issued", "user_id", user.ID)
	return nil
}

// CompletePasswordReset validates the submitted code against the newest one
// issued for the account and, on success, re-hashes the password and expires
// the code in the same transaction so it can never replay. Which check
// failed is not reported.
func (e *Engine) CompletePasswordReset(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if !validation.PasswordsMatch(newPassword, confirmPassword) {
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if err := validation.ValidatePasswordComplexity(newPassword); err != nil {
		return err
	}

	user, err := e.accounts.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		e.log.Error(ctx, "reset lookup failed", "error", err)
		return common.ErrInternal
	}

	ok, err := e.resets.Validate(ctx, user.ID, code)
	if err != nil {
		e.log.Error(ctx, "reset code validation failed", "error", err)
		return common.ErrInternal
	}
	if !ok {
		e.log.Warn(ctx, "invalid or expired reset code submitted", "user_id", user.ID)
		return common.ErrUnauthorized
	}

	if err := e.accounts.ResetPassword(ctx, user.ID, newPassword); err != nil {
		e.log.Error(ctx, "password reset failed", "user_id", user.ID, "error", err)
		return common.ErrInternal
	}

	e.log.Info(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

// ChangeAccountPassword updates the password of a logged-in user.
func (e *Engine) ChangeAccountPassword(ctx context.Context, userID, newPassword, confirmPassword string) error {
	if !validation.PasswordsMatch(newPassword, confirmPassword) {
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if err := validation.ValidatePasswordComplexity(newPassword); err != nil {
		return err
	}

	if err := e.accounts.ChangePassword(ctx, userID, newPassword); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		e.log.Error(ctx, "password change failed", "user_id", userID, "error", err)
		return common.ErrInternal
	}

	e.log.Info(ctx, "account password changed", "user_id", userID)
	return nil
}

// AddEntry stores a new encrypted credential for the user.
func (e *Engine) AddEntry(ctx context.Context, userID, website, username, secret string) error {
	if err := validateEntryIdentity(website, username); err != nil {
		return err
	}
	if secret == "" {
		return fmt.Errorf("%w: secret cannot be empty", common.ErrValidation)
	}

	if err := e.entries.Add(ctx, userID, website, username, secret); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return common.ErrAlreadyExists
		}
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		e.log.Error(ctx, "add entry failed", "user_id", userID, "error", err)
		return common.ErrInternal
	}

	e.log.Info(ctx, "entry added", "user_id", userID, "website", website)
	return nil
}

// GetEntry returns the decrypted secret for one entry.
func (e *Engine) GetEntry(ctx context.Context, userID, website, username string) (string, error) {
	if err := validateEntryIdentity(website, username); err != nil {
		return "", err
	}

	secret, err := e.entries.Get(ctx, userID, website, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		if errors.Is(err, common.ErrDecrypt) {
			e.log.Critical(ctx, "entry ciphertext failed authentication", "user_id", userID, "website", website)
			return "", common.ErrDecrypt
		}
		e.log.Error(ctx, "get entry failed", "user_id", userID, "error", err)
		return "", common.ErrInternal
	}

	return secret, nil
}

// EditEntry replaces the secret of an existing entry.
func (e *Engine) EditEntry(ctx context.Context, userID, website, username, newSecret string) error {
	if err := validateEntryIdentity(website, username); err != nil {
		return err
	}
	if newSecret == "" {
		return fmt.Errorf("%w: secret cannot be empty", common.ErrValidation)
	}

	if err := e.entries.Update(ctx, userID, website, username, newSecret); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		e.log.Error(ctx, "edit entry failed", "user_id", userID, "error", err)
		return common.ErrInternal
	}

	e.log.Info(ctx, "entry updated", "user_id", userID, "website", website)
	return nil
}

// DeleteEntry removes one entry.
func (e *Engine) DeleteEntry(ctx context.Context, userID, website, username string) error {
	if err := validateEntryIdentity(website, username); err != nil {
		return err
	}

	if err := e.entries.Delete(ctx, userID, website, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		e.log.Error(ctx, "delete entry failed", "user_id", userID, "error", err)
		return common.ErrInternal
	}

	e.log.Info(ctx, "entry deleted", "user_id", userID, "website", website)
	return nil
}

// ListEntries returns the user's entry summaries without secrets.
func (e *Engine) ListEntries(ctx context.Context, userID string) ([]models.EntrySummary, error) {
	summaries, err := e.entries.List(ctx, userID)
	if err != nil {
		e.log.Error(ctx, "list entries failed", "user_id", userID, "error", err)
		return nil, common.ErrInternal
	}
	return summaries, nil
}

// RemoveAccount deletes the account with all its entries and reset codes.
func (e *Engine) RemoveAccount(ctx context.Context, userID string) error {
	if err := e.accounts.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		e.log.Error(ctx, "account removal failed", "user_id", userID, "error", err)
		return common.ErrInternal
	}

	e.log.Info(ctx, "account removed", "user_id", userID)
	return nil
}

// SuggestPassword generates a random password for the front-end's
// "suggest password" action.
func (e *Engine) SuggestPassword(length int, withDigits, withSpecials bool) (string, error) {
	return cryptox.GeneratePassword(length, withDigits, withSpecials)
}

func validateEntryIdentity(website, username string) error {
	if website == "" {
		return fmt.Errorf("%w: website cannot be empty", common.ErrValidation)
	}
	if username == "" {
		return fmt.Errorf("%w: entry username cannot be empty", common.ErrValidation)
	}
	return nil
}
