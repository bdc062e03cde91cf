package testutil

import (
	"context"
	"time"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/migration"
	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/bouwconnect/backend/pkg/logger"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/gorilla/sessions"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: config.EnvLocal,
		ApiServer: config.ServerConfigs{
			Host: "localhost",
			Port: "4000",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "test-token-secret-0123456789abcdef",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "test-session-secret-0123456789abcdef",
			Name:   "bouwconnect_session",
		},
		Kafka: config.KafkaConfigs{
			Topic: "integration",
		},
		Relay: config.RelayConfigs{
			StateTTL:        10 * time.Minute,
			ExchangeTimeout: 10 * time.Second,
			ProxyTimeout:    10 * time.Second,
		},
	}
}

// MockContext returns a context carrying an empty in-memory database with
// every table migrated.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens its own database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	engine, err := authenticator.NewTokenEngine(cfg.Auth.TokenSecret)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, engine)
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
