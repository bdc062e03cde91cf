package popup

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Kind string

const (
	KindToken Kind = "token"
	KindError Kind = "error"
)

// Envelope is the message a popup posts to its opener once the authorization
// attempt is over. Exactly one of the token fields or Message is meaningful,
// depending on Kind.
type Envelope struct {
	Kind Kind

	Tool         string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64

	Message string
}

func Token(tool, accessToken, refreshToken string, expiresIn int64) Envelope {
	return Envelope{
		Kind:         KindToken,
		Tool:         tool,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}
}

func Failure(message string) Envelope {
	return Envelope{Kind: KindError, Message: message}
}

// FailedAuthentication is the only failure ever reported to the opener, the
// upstream reason stays in the relay logs.
func FailedAuthentication(tool string) Envelope {
	return Failure(fmt.Sprintf("%s OAuth authentication failed", tool))
}

// Payload returns the object posted to the opener:
//
//	{"<tool>_token": ..., "<tool>_refresh_token": ... | null, "<tool>_expires_in": ...}
//
// or {"error": ...}.
func (e Envelope) Payload() map[string]any {
	if e.Kind == KindError {
		return map[string]any{"error": e.Message}
	}

	var refreshToken any
	if e.RefreshToken != "" {
		refreshToken = e.RefreshToken
	}

	return map[string]any{
		e.Tool + "_token":         e.AccessToken,
		e.Tool + "_refresh_token": refreshToken,
		e.Tool + "_expires_in":    e.ExpiresIn,
	}
}

type tokenFields struct {
	Token        string `mapstructure:"token"`
	RefreshToken string `mapstructure:"refresh_token"`
	ExpiresIn    int64  `mapstructure:"expires_in"`
}

// Decode recognizes a payload posted by a popup. The returned bool is false
// when data belongs to another protocol sharing the message channel, which is
// not an error.
func Decode(data any, tools []string) (Envelope, bool, error) {
	fields, ok := data.(map[string]any)
	if !ok {
		return Envelope{}, false, nil
	}

	if msg, ok := fields["error"]; ok {
		message, _ := msg.(string)
		if message == "" {
			message = fmt.Sprint(msg)
		}
		return Failure(message), true, nil
	}

	for _, tool := range tools {
		token, ok := fields[tool+"_token"]
		if !ok {
			continue
		}

		raw := map[string]any{
			"token":         token,
			"refresh_token": fields[tool+"_refresh_token"],
			"expires_in":    fields[tool+"_expires_in"],
		}

		var decoded tokenFields
		if err := mapstructure.WeakDecode(raw, &decoded); err != nil {
			return Envelope{}, true, fmt.Errorf("invalid %s token payload: %w", tool, err)
		}

		// Older relays interpolated a missing refresh token as a literal.
		if decoded.RefreshToken == "undefined" || decoded.RefreshToken == "null" {
			decoded.RefreshToken = ""
		}

		if strings.TrimSpace(decoded.Token) == "" {
			return Envelope{}, true, fmt.Errorf("empty %s token", tool)
		}

		return Token(tool, decoded.Token, decoded.RefreshToken, decoded.ExpiresIn), true, nil
	}

	return Envelope{}, false, nil
}
