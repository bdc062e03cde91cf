package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/enum"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func parseTool(s string) (entity.Tool, error) {
	tool, err := enum.ToEnum[entity.Tool](s)
	if err != nil {
		return "", errorx.New(errorx.UnknownTool, "Unknown tool %s", s)
	}

	return tool, nil
}

// checkRequestUser ensures the request is made by an app user and, when
// userID is given, that it is this user.
func checkRequestUser(ctx context.Context, userID string) (string, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return "", errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if userID != "" && userID != requestUserID {
		return "", errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return requestUserID, nil
}

func newToolToken(
	userID string, tool entity.Tool, accessToken, refreshToken string, expiresIn int64,
) *entity.ToolToken {
	token := &entity.ToolToken{
		UserID:       userID,
		Tool:         tool,
		AccessToken:  accessToken,
		RefreshToken: sql.NullString{String: refreshToken, Valid: refreshToken != ""},
		ExpiresIn:    expiresIn,
	}

	if expiresIn > 0 {
		token.ExpiresAt = sql.NullTime{
			Time:  time.Now().Add(time.Duration(expiresIn) * time.Second),
			Valid: true,
		}
	}

	return token
}

// upsertToolToken stores token unless the same credentials are already
// stored. It reports whether the stored token changed.
func upsertToolToken(
	ctx context.Context, toolTokenRepo repository.ToolTokenRepository, token *entity.ToolToken,
) (bool, error) {
	existing, err := toolTokenRepo.Get(ctx, token.UserID, token.Tool)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err == nil && existing.SameCredentials(token) {
		return false, nil
	}

	if err := toolTokenRepo.Upsert(ctx, token); err != nil {
		return false, err
	}

	return true, nil
}

func convertToolToken(token *entity.ToolToken) model.ToolToken {
	result := model.ToolToken{
		UserID:       token.UserID,
		ToolID:       token.Tool.String(),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken.String,
		ExpiresIn:    token.ExpiresIn,
		CreatedAt:    token.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    token.UpdatedAt.Format(time.RFC3339),
	}

	if token.ExpiresAt.Valid {
		result.ExpiresAt = token.ExpiresAt.Time.Format(time.RFC3339)
	}

	return result
}

func convertUser(user *entity.User) model.User {
	return model.User{ID: user.ID, Email: user.Email, Name: user.Name}
}

func durationOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}

	return d
}
