package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/internal/common"
	"github.com/bouwconnect/backend/internal/domain"
	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/migration"
	"github.com/bouwconnect/backend/pkg/api"
	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/bouwconnect/backend/pkg/catalog"
	"github.com/bouwconnect/backend/pkg/kafka"
	"github.com/bouwconnect/backend/pkg/logger"
	"github.com/bouwconnect/backend/pkg/pubsub"
	"github.com/bouwconnect/backend/pkg/router"
	"github.com/bouwconnect/backend/pkg/storage"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/bouwconnect/backend/pkg/xredis"
	"github.com/gorilla/sessions"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	server *http.Server
	router *router.Router

	redisClient xredis.Client
	publisher   pubsub.Publisher
	storage     storage.Storage
	catalog     catalog.Catalog
	providers   map[entity.Tool]authenticator.IOAuth2Provider

	userRepo      repository.UserRepository
	toolTokenRepo repository.ToolTokenRepository
	toolLinkRepo  repository.ToolLinkRepository
	stateRepo     repository.OAuth2StateRepository

	authDomain     domain.AuthDomain
	oauth2Domain   domain.OAuth2Domain
	userToolDomain domain.UserToolDomain
	catalogDomain  domain.CatalogDomain
	healthDomain   domain.HealthDomain
}

func (s *srv) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	engine, err := authenticator.NewTokenEngine(cfg.Auth.TokenSecret)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.LogLevel))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.Relay.ProxyTimeout})
	s.ctx = xcontext.WithTokenEngine(s.ctx, engine)

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Env == config.EnvProduction
	store.Options.MaxAge = int(cfg.Relay.StateTTL.Seconds())
	s.ctx = xcontext.WithSessionStore(s.ctx, store)

	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := gormlogger.Error
	switch cfg.LogLevel {
	case "silent":
		logLevel = gormlogger.Silent
	case "warn":
		logLevel = gormlogger.Warn
	case "info":
		logLevel = gormlogger.Info
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	for _, version := range migration.Versions() {
		if err := migration.Migrators[version](s.ctx); err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}
	}

	return nil
}

func (s *srv) loadRedisClient() error {
	addr := xcontext.Configs(s.ctx).Redis.Addr
	if addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, authorization states are kept in memory")
		return nil
	}

	client, err := xredis.NewClient(s.ctx, addr)
	if err != nil {
		return err
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		s.publisher = pubsub.NewNopPublisher()
		return nil
	}

	publisher, err := kafka.NewPublisher("relay", []string{cfg.Addr})
	if err != nil {
		return err
	}

	s.publisher = publisher
	return nil
}

func (s *srv) loadStorage() error {
	cfg := xcontext.Configs(s.ctx).Storage
	if cfg.Bucket == "" {
		xcontext.Logger(s.ctx).Warnf("Storage is not configured, fallback files cannot be downloaded")
		return nil
	}

	stg, err := storage.NewS3Storage(cfg)
	if err != nil {
		return err
	}

	s.storage = stg
	return nil
}

func (s *srv) loadCatalog() {
	graphURL := xcontext.Configs(s.ctx).Catalog.GraphURL
	s.catalog = catalog.NewFallbackCatalog(
		catalog.NewGraphCatalog(api.NewGenerator(graphURL)),
		catalog.NewStaticCatalog(s.storage),
	)
}

func (s *srv) loadProviders() error {
	providers, err := common.NewOAuth2Providers(s.ctx, xcontext.Configs(s.ctx))
	if err != nil {
		return err
	}

	for tool, provider := range providers {
		if !provider.Configured() {
			xcontext.Logger(s.ctx).Warnf("Provider of %s is not configured", tool)
		}
	}

	s.providers = providers
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.toolTokenRepo = repository.NewToolTokenRepository()
	s.toolLinkRepo = repository.NewToolLinkRepository()

	if s.redisClient != nil {
		s.stateRepo = repository.NewRedisOAuth2StateRepository(s.redisClient)
	} else {
		s.stateRepo = repository.NewMemoryOAuth2StateRepository()
	}
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.oauth2Domain = domain.NewOAuth2Domain(
		s.providers, s.stateRepo, s.toolTokenRepo, s.toolLinkRepo, s.publisher)
	s.userToolDomain = domain.NewUserToolDomain(s.toolTokenRepo, s.toolLinkRepo, s.publisher)
	s.catalogDomain = domain.NewCatalogDomain(s.catalog, s.toolTokenRepo)
	s.healthDomain = domain.NewHealthDomain()
}
