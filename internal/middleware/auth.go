package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

// AuthVerifier identifies the app user of a request from its access token,
// carried either as a bearer token or as a cookie.
type AuthVerifier struct {
	useAccessToken bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// WithOptional lets anonymous requests through, with an empty request user.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			if userID := verifyUserByAccessToken(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		if a.optional {
			return nil, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func verifyUserByAccessToken(ctx context.Context) string {
	token := getAccessToken(ctx)
	if token == "" {
		return ""
	}

	var accessToken model.AccessToken
	if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
		return ""
	}

	return accessToken.ID
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	if prefix, token, found := strings.Cut(authorization, " "); found && strings.EqualFold(prefix, "Bearer") {
		return strings.TrimSpace(token)
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err == http.ErrNoCookie || cookie == nil {
		return ""
	}

	return cookie.Value
}
