package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	tests := []struct {
		name         string
		length       int
		withDigits   bool
		withSpecials bool
	}{
		{name: "letters only", length: 12},
		{name: "with digits", length: 16, withDigits: true},
		{name: "with specials", length: 20, withDigits: true, withSpecials: true},
		{name: "length one", length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := GeneratePassword(tt.length, tt.withDigits, tt.withSpecials)
			require.NoError(t, err)
			assert.Len(t, password, tt.length)

			charset := letters
			if tt.withDigits {
				charset += digits
			}
			if tt.withSpecials {
				charset += specials
			}
			for _, r := range password {
				assert.True(t, strings.ContainsRune(charset, r), "unexpected character %q", r)
			}
		})
	}
}

func TestGeneratePassword_InvalidLength(t *testing.T) {
	_, err := GeneratePassword(0, true, true)
	assert.Error(t, err)

	_, err = GeneratePassword(-5, true, true)
	assert.Error(t, err)
}
