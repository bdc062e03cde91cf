package middleware

import (
	"context"
	"net/http"

	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

// RedirectResponse is a response answered with a redirect. A zero code
// renders the response as usual.
type RedirectResponse interface {
	RedirectInfo() (int, string)
}

func HandleRedirect() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		redirectResp, ok := xcontext.Response(ctx).(RedirectResponse)
		if !ok {
			return nil, nil
		}

		code, uri := redirectResp.RedirectInfo()
		if code == 0 {
			return nil, nil
		}

		http.Redirect(xcontext.ResponseWriter(ctx), xcontext.HTTPRequest(ctx), uri, code)

		// After rendering redirect response, do not render another response to client.
		return xcontext.WithResponse(ctx, nil), nil
	}
}
