package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/passvault/internal/common"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "alice"},
		{name: "valid with underscore and digits", username: "alice_42"},
		{name: "minimum length", username: "abc"},
		{name: "maximum length", username: strings.Repeat("a", 50)},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: strings.Repeat("a", 51), wantErr: true},
		{name: "spaces", username: "al ice", wantErr: true},
		{name: "sql-ish input", username: "a';DROP TABLE--", wantErr: true},
		{name: "non-latin", username: "алиса", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "a@x.com"},
		{name: "valid with plus", email: "a+tag@example.co.uk"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at", email: "ax.com", wantErr: true},
		{name: "no domain", email: "a@", wantErr: true},
		{name: "no tld", email: "a@x", wantErr: true},
		{name: "spaces", email: "a b@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Str0ng!Pass"},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "S0r!t", wantErr: true},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 50), wantErr: true},
		{name: "no digit", password: "Strong!Pass", wantErr: true},
		{name: "no uppercase", password: "str0ng!pass", wantErr: true},
		{name: "no lowercase", password: "STR0NG!PASS", wantErr: true},
		{name: "no special", password: "Str0ngPass", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordComplexity(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("abc", "abc"))
	assert.False(t, PasswordsMatch("abc", "abd"))
	assert.False(t, PasswordsMatch("", ""))
}
