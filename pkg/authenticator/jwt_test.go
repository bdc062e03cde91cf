package authenticator_test

import (
	"testing"
	"time"

	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type accessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func TestJWT(t *testing.T) {
	engine, err := authenticator.NewTokenEngine("secret")
	require.NoError(t, err)
	token, err := engine.Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTStruct(t *testing.T) {
	engine, err := authenticator.NewTokenEngine("secret")
	require.NoError(t, err)
	token, err := engine.Generate(time.Minute, accessToken{ID: "u1", Email: "test@demo.nl"})
	require.NoError(t, err)

	var info accessToken
	require.NoError(t, engine.Verify(token, &info))
	require.Equal(t, "u1", info.ID)
	require.Equal(t, "test@demo.nl", info.Email)
}

func TestJWTExpiration(t *testing.T) {
	engine, err := authenticator.NewTokenEngine("secret")
	require.NoError(t, err)
	token, err := engine.Generate(time.Nanosecond, "abc")
	require.NoError(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine, err := authenticator.NewTokenEngine("secret")
	require.NoError(t, err)
	token, err := engine.Generate(time.Minute, "abc")
	require.NoError(t, err)

	other, err := authenticator.NewTokenEngine("other")
	require.NoError(t, err)

	var msg string
	require.Error(t, other.Verify(token, &msg))
}

func TestJWTEmptySecret(t *testing.T) {
	engine, err := authenticator.NewTokenEngine("")
	require.ErrorIs(t, err, authenticator.ErrEmptySecret)
	require.Nil(t, engine)
}
