package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_toolTokenRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewToolTokenRepository()

	err := repo.Upsert(ctx, &entity.ToolToken{
		UserID:       "user1",
		Tool:         entity.Excel,
		AccessToken:  "access-1",
		RefreshToken: sql.NullString{String: "refresh-1", Valid: true},
		ExpiresIn:    3600,
	})
	require.NoError(t, err)

	err = repo.Upsert(ctx, &entity.ToolToken{
		UserID:      "user1",
		Tool:        entity.Excel,
		AccessToken: "access-2",
		ExpiresIn:   60,
		ExpiresAt:   sql.NullTime{Time: time.Now().Add(time.Minute), Valid: true},
	})
	require.NoError(t, err)

	tokens, err := repo.GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "access-2", tokens[0].AccessToken)
	require.False(t, tokens[0].RefreshToken.Valid)
	require.Equal(t, int64(60), tokens[0].ExpiresIn)
	require.True(t, tokens[0].ExpiresAt.Valid)
}

func Test_toolTokenRepository_GetDelete(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewToolTokenRepository()

	_, err := repo.Get(ctx, "user1", entity.AutoCAD)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Upsert(ctx, &entity.ToolToken{
		UserID:      "user1",
		Tool:        entity.AutoCAD,
		AccessToken: "access",
	}))
	require.NoError(t, repo.Upsert(ctx, &entity.ToolToken{
		UserID:      "user2",
		Tool:        entity.AutoCAD,
		AccessToken: "other",
	}))

	token, err := repo.Get(ctx, "user1", entity.AutoCAD)
	require.NoError(t, err)
	require.Equal(t, "access", token.AccessToken)

	require.NoError(t, repo.Delete(ctx, "user1", entity.AutoCAD))

	_, err = repo.Get(ctx, "user1", entity.AutoCAD)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	token, err = repo.Get(ctx, "user2", entity.AutoCAD)
	require.NoError(t, err)
	require.Equal(t, "other", token.AccessToken)
}
