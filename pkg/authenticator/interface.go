package authenticator

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}

// IOAuth2Provider brokers the authorization-code grant of a single tool.
type IOAuth2Provider interface {
	// Tool returns the tool identifier this provider is registered for.
	Tool() string

	// Name returns the human readable name of the identity provider, for
	// example Microsoft.
	Name() string

	// Configured reports whether a real client id has been set.
	Configured() bool

	RedirectURI() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}
