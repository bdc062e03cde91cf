package middleware

import (
	"context"
	"net/http"

	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo() []http.Cookie
}

func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cookieResp, ok := xcontext.Response(ctx).(CookieResponse)
		if ok {
			for _, cookie := range cookieResp.CookieInfo() {
				cookie := cookie
				http.SetCookie(xcontext.ResponseWriter(ctx), &cookie)
			}
		}

		return nil, nil
	}
}
