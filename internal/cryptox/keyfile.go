package cryptox

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// LoadOrCreateKey returns the deployment encryption key stored at path,
// generating and persisting a new one on first start. The key lives outside
// the database on purpose: it must never share storage with the ciphertext
// it protects. Losing the file makes existing ciphertext unrecoverable.
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key, decErr := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if decErr != nil {
			return nil, fmt.Errorf("key file %s is corrupt: %w", path, decErr)
		}
		if len(key) != KeyLen {
			return nil, fmt.Errorf("key file %s holds %d bytes, want %d", path, len(key), KeyLen)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	key := common.GenerateRandByteArray(KeyLen)

	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}

	return key, nil
}
