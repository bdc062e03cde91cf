package router

import (
	"context"
	"net/http"

	"github.com/bouwconnect/backend/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a nil context to keep the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type CloserFunc func(ctx context.Context)

// ErrorWriterFunc renders an error returned by a middleware or a handler.
type ErrorWriterFunc func(ctx context.Context, err error)

type Router struct {
	engine *gin.Engine
	ctx    context.Context

	befores     []MiddlewareFunc
	afters      []MiddlewareFunc
	closers     []CloserFunc
	errorWriter ErrorWriterFunc
}

// New creates a router whose handlers receive a context derived from ctx, so
// every value stored in ctx (configs, logger, database) is visible to them.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true

	return &Router{
		engine:      engine,
		ctx:         ctx,
		errorWriter: WriteJSONError,
	}
}

// Branch returns a router sharing the same engine but with its own copy of
// middlewares. Middlewares added to the branch do not affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		engine:      r.engine,
		ctx:         r.ctx,
		befores:     append([]MiddlewareFunc{}, r.befores...),
		afters:      append([]MiddlewareFunc{}, r.afters...),
		closers:     append([]CloserFunc{}, r.closers...),
		errorWriter: r.errorWriter,
	}
}

func (r *Router) Before(middlewares ...MiddlewareFunc) {
	r.befores = append(r.befores, middlewares...)
}

func (r *Router) After(middlewares ...MiddlewareFunc) {
	r.afters = append(r.afters, middlewares...)
}

func (r *Router) AddCloser(closers ...CloserFunc) {
	r.closers = append(r.closers, closers...)
}

func (r *Router) SetErrorWriter(w ErrorWriterFunc) {
	r.errorWriter = w
}

// Handle mounts a plain http.Handler, bypassing middlewares.
func (r *Router) Handle(method, pattern string, h http.Handler) {
	r.engine.Handle(method, pattern, gin.WrapH(h))
}

// Handler returns the engine behind the CORS policy of cfg. Credentials are
// allowed for the listed origins only.
func (r *Router) Handler(cfg config.CorsConfigs) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r.engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
