package main

import (
	"net/http"

	"github.com/bouwconnect/backend/internal/common"
	"github.com/bouwconnect/backend/internal/middleware"
	"github.com/bouwconnect/backend/pkg/prometheus"
	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadStorage(); err != nil {
		return err
	}

	if err := s.loadProviders(); err != nil {
		return err
	}

	s.loadCatalog()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(cfg.Cors),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger(), middleware.Prometheus())

	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler(common.PromCollectors()...))

	optionalAuth := middleware.NewAuthVerifier().WithAccessToken().WithOptional().Middleware()
	requiredAuth := middleware.NewAuthVerifier().WithAccessToken().Middleware()

	// Popup API. The flow is bound to the app user when the popup carries the
	// access token cookie.
	authRouter := s.router.Branch()
	authRouter.Before(optionalAuth)
	authRouter.After(middleware.HandleSaveSession(), middleware.HandleRedirect())
	{
		router.GET(authRouter, "/:tool/auth", s.oauth2Domain.Begin)
	}

	callbackRouter := s.router.Branch()
	callbackRouter.Before(optionalAuth)
	callbackRouter.After(middleware.HandleHTML())
	callbackRouter.SetErrorWriter(router.WriteTextError)
	{
		router.GET(callbackRouter, "/:tool/callback", s.oauth2Domain.Callback)
	}

	// Login API
	loginRouter := s.router.Branch()
	loginRouter.After(middleware.HandleSetCookie())
	{
		router.POST(loginRouter, "/login", s.authDomain.Login)
	}

	// These following APIs need an app user.
	userRouter := s.router.Branch()
	userRouter.Before(requiredAuth)
	{
		router.GET(userRouter, "/me", s.authDomain.GetMe)

		// Token API
		router.POST(userRouter, "/user/tokens", s.userToolDomain.StoreToken)
		router.GET(userRouter, "/user/tokens/:userId/:toolId", s.userToolDomain.GetToken)

		// Tool link API
		router.GET(userRouter, "/user/tools", s.userToolDomain.GetTools)
		router.POST(userRouter, "/user/tools", s.userToolDomain.SetTools)
		router.POST(userRouter, "/user/tools/disconnect", s.userToolDomain.Disconnect)
		router.GET(userRouter, "/user/integrations", s.userToolDomain.GetIntegrations)

		router.POST(userRouter, "/:tool/refresh", s.oauth2Domain.Refresh)
	}

	// Catalog API. Anonymous users get the static catalog.
	catalogRouter := s.router.Branch()
	catalogRouter.Before(optionalAuth)
	{
		router.GET(catalogRouter, "/:tool/projects", s.catalogDomain.GetProjects)
		router.GET(catalogRouter, "/:tool/files", s.catalogDomain.GetFiles)
		router.GET(catalogRouter, "/:tool/files/:id/preview", s.catalogDomain.Preview)
	}

	downloadRouter := catalogRouter.Branch()
	downloadRouter.After(middleware.HandleRedirect())
	{
		router.GET(downloadRouter, "/:tool/files/:id/download", s.catalogDomain.Download)
	}

	// Public API.
	router.GET(s.router, "/health", s.healthDomain.Check)
}
