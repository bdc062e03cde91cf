package middleware

import (
	"context"
	"errors"

	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession must run before any middleware writing the response body.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, errors.New("no session info")
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			// A cookie of a previous secret is replaced by a new session.
			xcontext.Logger(ctx).Debugf("Cannot decode session: %v", err)
		}

		if session == nil {
			return nil, errorx.Unknown
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := session.Save(req, xcontext.ResponseWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save session: %v", err)
			return nil, errorx.Unknown
		}

		return nil, nil
	}
}
