package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/bouwconnect/backend/pkg/logger"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type (
	configsKey        struct{}
	loggerKey         struct{}
	dbKey             struct{}
	dbTransactionKey  struct{}
	httpClientKey     struct{}
	tokenEngineKey    struct{}
	sessionStoreKey   struct{}
	httpRequestKey    struct{}
	responseWriterKey struct{}
	requestUserIDKey  struct{}
	responseKey       struct{}
	errorKey          struct{}
	startTimeKey      struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, _ := ctx.Value(configsKey{}).(config.Configs)
	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewNopLogger()
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the database
// stored by WithDB.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

func WithDBTransaction(ctx context.Context) context.Context {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	return context.WithValue(ctx, dbTransactionKey{}, db.Begin())
}

func WithCommitDBTransaction(ctx context.Context) (context.Context, error) {
	var err error
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		err = tx.Commit().Error
	}

	return context.WithValue(ctx, dbTransactionKey{}, nil), err
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		tx.Rollback()
	}

	return context.WithValue(ctx, dbTransactionKey{}, nil)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client, ok := ctx.Value(httpClientKey{}).(*http.Client)
	if !ok {
		return &http.Client{Timeout: 10 * time.Second}
	}

	return client
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, _ := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
	return engine
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	store, _ := ctx.Value(sessionStoreKey{}).(sessions.Store)
	return store
}
