// Package models defines the data types persisted by the vault engine.
package models

import "time"

// User is an account row. PasswordHash is a PHC-format argon2id token;
// the raw password is never stored.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
	IsLocked     bool
}
