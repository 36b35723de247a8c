// Package validation checks user-supplied input before it reaches storage.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/passvault/internal/common"
)

const (
	// MinUsernameLen is the minimum username length.
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length.
	MaxUsernameLen = 50

	minPasswordLen = 8
	maxPasswordLen = 50

	specialChars = "!@#$%^&*()-_+=<>?"
)

// usernamePattern restricts usernames to latin letters, digits and underscore.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// emailPattern is a pragmatic format check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidateUsername checks length (3–50) and charset (a-z, A-Z, 0-9, _).
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", common.ErrValidation)
	}
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return fmt.Errorf("%w: username must be between %d and %d characters",
			common.ErrValidation, MinUsernameLen, MaxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username can only contain letters, numbers and underscores",
			common.ErrValidation)
	}
	return nil
}

// ValidateEmail checks that email looks like an address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", common.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	return nil
}

// ValidatePasswordComplexity enforces the account password policy:
// 8–50 characters with at least one digit, one uppercase letter, one
// lowercase letter and one special character.
func ValidatePasswordComplexity(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", common.ErrValidation)
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be between %d and %d characters",
			common.ErrValidation, minPasswordLen, maxPasswordLen)
	}

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
		if strings.ContainsRune(specialChars, r) {
			hasSpecial = true
		}
	}

	switch {
	case !hasDigit:
		return fmt.Errorf("%w: password must contain at least one numeral", common.ErrValidation)
	case !hasUpper:
		return fmt.Errorf("%w: password must contain at least one uppercase letter", common.ErrValidation)
	case !hasLower:
		return fmt.Errorf("%w: password must contain at least one lowercase letter", common.ErrValidation)
	case !hasSpecial:
		return fmt.Errorf("%w: password must contain at least one of %s", common.ErrValidation, specialChars)
	}

	return nil
}

// PasswordsMatch reports whether the password and its confirmation are equal
// and non-empty.
func PasswordsMatch(password, confirm string) bool {
	return password != "" && password == confirm
}
