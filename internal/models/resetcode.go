package models

import "time"

// ResetCode is one issued password-reset code. Rows are never updated except
// to flip Expired; a superseding request inserts a new row.
type ResetCode struct {
	ID       int64
	UserID   string
	Code     string
	IssuedAt time.Time
	Expired  bool
}
