package entity

import "time"

// OAuth2State is the pending authorization attempt of a tool. It lives in the
// state store only, never in the database.
type OAuth2State struct {
	Tool        Tool      `json:"tool"`
	Nonce       string    `json:"nonce"`
	RedirectURI string    `json:"redirect_uri"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
