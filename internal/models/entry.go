package models

import "time"

// VaultEntry is a stored credential. Secret is an AES-GCM blob; entry_id is
// the storage key, but callers address entries by (user, website, username).
type VaultEntry struct {
	ID         int64
	UserID     string
	Website    string
	Username   string
	Secret     []byte
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// EntrySummary is the listing projection: everything except the secret, so
// bulk listing never forces bulk decryption.
type EntrySummary struct {
	ID         int64
	Website    string
	Username   string
	CreatedAt  time.Time
	ModifiedAt time.Time
}
