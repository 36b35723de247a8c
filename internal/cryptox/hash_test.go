package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.NotContains(t, hash, "Str0ng!Pass")
}

func TestHashPassword_SaltIsFresh(t *testing.T) {
	h1, err := HashPassword("samepassword")
	require.NoError(t, err)
	h2, err := HashPassword("samepassword")
	require.NoError(t, err)

	// Fresh salt per call means identical inputs produce different tokens.
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		encoded  string
		want     bool
	}{
		{name: "correct password", password: "Str0ng!Pass", encoded: hash, want: true},
		{name: "wrong password", password: "Wr0ng!Pass", encoded: hash, want: false},
		{name: "empty password", password: "", encoded: hash, want: false},
		{name: "empty token", password: "Str0ng!Pass", encoded: "", want: false},
		{name: "garbage token", password: "Str0ng!Pass", encoded: "not-a-hash", want: false},
		{name: "wrong algorithm", password: "Str0ng!Pass", encoded: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", want: false},
		{name: "bad salt encoding", password: "Str0ng!Pass", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA", want: false},
		{name: "truncated token", password: "Str0ng!Pass", encoded: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, tt.encoded))
		})
	}
}
