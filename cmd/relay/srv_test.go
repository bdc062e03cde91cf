package main

import (
	"context"
	"testing"

	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_loadConfig_RequiresSecrets(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("SESSION_SECRET", "")

	s := &srv{ctx: context.Background()}
	require.Error(t, s.loadConfig())
	require.Nil(t, xcontext.TokenEngine(s.ctx))
}

func Test_loadConfig(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TOKEN_SECRET", "relay-token-secret-0123456789abcdef")
	t.Setenv("SESSION_SECRET", "relay-session-secret-0123456789abcdef")

	s := &srv{ctx: context.Background()}
	require.NoError(t, s.loadConfig())

	engine := xcontext.TokenEngine(s.ctx)
	require.NotNil(t, engine)
	require.NotNil(t, xcontext.SessionStore(s.ctx))
}
