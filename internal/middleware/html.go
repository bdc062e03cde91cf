package middleware

import (
	"context"
	"net/http"

	"github.com/bouwconnect/backend/pkg/popup"
	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

// HTMLResponse is a response rendered as the popup page.
type HTMLResponse interface {
	HTMLInfo() (int, popup.Envelope)
}

func HandleHTML() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		htmlResp, ok := xcontext.Response(ctx).(HTMLResponse)
		if !ok {
			return nil, nil
		}

		status, envelope := htmlResp.HTMLInfo()
		if status == 0 {
			status = http.StatusOK
		}

		w := xcontext.ResponseWriter(ctx)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := popup.Render(w, envelope); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot render popup page: %v", err)
		}

		return xcontext.WithResponse(ctx, nil), nil
	}
}
