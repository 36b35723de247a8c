package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
)

const (
	// KeyLen is the AES-256 key length in bytes.
	KeyLen = 32
	// nonceLen is the standard GCM nonce length.
	nonceLen = 12
)

// Encrypt encrypts plaintext with AES-256-GCM. A fresh random nonce is
// generated per call and prefixed to the result: nonce || ciphertext || tag.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeyLen, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends the ciphertext and tag to the nonce we already hold.
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt. Any tampering with the blob (including a single
// flipped bit) fails tag verification and returns common.ErrDecrypt instead
// of corrupted plaintext.
func Decrypt(encrypted, key []byte) ([]byte, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeyLen, len(key))
	}
	if len(encrypted) < nonceLen {
		return nil, fmt.Errorf("%w: blob too short", common.ErrDecrypt)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesgcm.Open(nil, encrypted[:nonceLen], encrypted[nonceLen:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
	}

	return plaintext, nil
}
