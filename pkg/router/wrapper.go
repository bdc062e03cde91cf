package router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := r.befores
	afters := r.afters
	closers := r.closers
	errorWriter := r.errorWriter

	return func(c *gin.Context) {
		ctx := xcontext.WithHTTPRequest(r.ctx, c.Request)
		ctx = xcontext.WithResponseWriter(ctx, c.Writer)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var err error
		ctx, err = runMiddlewares(ctx, befores)
		if err == nil {
			ctx, err = serve(ctx, c, method, handler)
		}

		if err == nil {
			ctx, err = runMiddlewares(ctx, afters)
		}

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			errorWriter(ctx, err)
			return
		}

		if resp := xcontext.Response(ctx); resp != nil {
			if err := WriteJSON(c.Writer, http.StatusOK, resp); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}
		}
	}
}

func serve[Request, Response any](
	ctx context.Context, c *gin.Context, method string, handler HandlerFunc[Request, Response],
) (context.Context, error) {
	var req Request
	if err := bind(ctx, c, method, &req); err != nil {
		return ctx, err
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return ctx, err
	}

	if resp != nil {
		ctx = xcontext.WithResponse(ctx, resp)
	}

	return ctx, nil
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if newCtx != nil {
			ctx = newCtx
		}

		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

// bind fills req from the query, the body and finally the path, so a query
// key or body field named after a path field never overrides the path.
func bind(ctx context.Context, c *gin.Context, method string, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind query: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid query parameters")
	}

	if method == http.MethodPost {
		if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			xcontext.Logger(ctx).Debugf("Cannot bind body: %v", err)
			return errorx.New(errorx.BadRequest, "Invalid request body")
		}
	}

	if err := c.ShouldBindUri(req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind uri: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid path parameters")
	}

	if err := bindSession(ctx, req); err != nil {
		return err
	}

	return validate(req)
}
