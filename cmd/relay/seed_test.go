package main

import (
	"testing"

	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/testutil"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func Test_SeedDemoUser(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Demo.Email = "demo@bouwconnect.nl"
	cfg.Demo.Password = "demo123"
	cfg.Demo.Name = "Demo"
	ctx = xcontext.WithConfigs(ctx, cfg)

	s := &srv{ctx: ctx, userRepo: repository.NewUserRepository()}
	require.NoError(t, s.seedDemoUser())
	require.NoError(t, s.seedDemoUser())

	user, err := s.userRepo.GetByEmail(ctx, "demo@bouwconnect.nl")
	require.NoError(t, err)
	require.Equal(t, "Demo", user.Name)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("demo123")))
}

func Test_SeedDemoUser_Unconfigured(t *testing.T) {
	s := &srv{ctx: testutil.MockContext(), userRepo: repository.NewUserRepository()}
	require.Error(t, s.seedDemoUser())
}
