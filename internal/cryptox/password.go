package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	letters  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits   = "0123456789"
	specials = "!@#$%^&*()-_+=<>?"
)

// GeneratePassword produces a random password of the given length from a
// charset of letters, optionally digits and special characters. Used by the
// front-end's "suggest password" action.
func GeneratePassword(length int, withDigits, withSpecials bool) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}

	charset := letters
	if withDigits {
		charset += digits
	}
	if withSpecials {
		charset += specials
	}

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("random source failed: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}
