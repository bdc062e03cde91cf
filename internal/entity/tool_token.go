package entity

import (
	"database/sql"
	"time"
)

// ToolToken is the credential set of a user for a tool. There is at most one
// row per (user, tool).
type ToolToken struct {
	UserID string `gorm:"primaryKey"`
	Tool   Tool   `gorm:"primaryKey"`

	AccessToken  string
	RefreshToken sql.NullString
	ExpiresIn    int64
	ExpiresAt    sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameCredentials reports whether other carries the same credentials.
func (t *ToolToken) SameCredentials(other *ToolToken) bool {
	return t.AccessToken == other.AccessToken &&
		t.RefreshToken == other.RefreshToken &&
		t.ExpiresIn == other.ExpiresIn
}

// Live reports whether the token can still be used at the given time. Tokens
// without expiry never expire.
func (t *ToolToken) Live(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}

	return !t.ExpiresAt.Valid || t.ExpiresAt.Time.After(now)
}
