package model

import (
	"net/http"

	"github.com/bouwconnect/backend/pkg/popup"
)

const SessionStateKey = "state"

type BeginAuthorizationRequest struct {
	Tool string `uri:"tool"`
}

type BeginAuthorizationResponse struct {
	RedirectURL string `json:"-"`
	State       string `json:"-"`
}

func (r *BeginAuthorizationResponse) RedirectInfo() (int, string) {
	return http.StatusFound, r.RedirectURL
}

func (r *BeginAuthorizationResponse) SessionInfo() map[string]any {
	return map[string]any{SessionStateKey: r.State}
}

type CompleteAuthorizationRequest struct {
	Tool             string `uri:"tool"`
	Code             string `form:"code"`
	State            string `form:"state"`
	Error            string `form:"error"`
	ErrorDescription string `form:"error_description"`

	SessionState string `session:"state,delete"`
}

// CompleteAuthorizationResponse is rendered as the popup page. Failures are
// responses too, the popup must always be able to report to its opener.
type CompleteAuthorizationResponse struct {
	Status   int            `json:"-"`
	Envelope popup.Envelope `json:"-"`
}

func (r *CompleteAuthorizationResponse) HTMLInfo() (int, popup.Envelope) {
	return r.Status, r.Envelope
}

type RefreshTokenRequest struct {
	Tool   string `uri:"tool"`
	UserID string `json:"userId"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}
