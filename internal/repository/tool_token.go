package repository

import (
	"context"
	"time"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ToolTokenRepository interface {
	Upsert(ctx context.Context, data *entity.ToolToken) error
	Get(ctx context.Context, userID string, tool entity.Tool) (*entity.ToolToken, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.ToolToken, error)
	Delete(ctx context.Context, userID string, tool entity.Tool) error
}

type toolTokenRepository struct{}

func NewToolTokenRepository() *toolTokenRepository {
	return &toolTokenRepository{}
}

func (r *toolTokenRepository) Upsert(ctx context.Context, data *entity.ToolToken) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "tool"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"access_token":  data.AccessToken,
				"refresh_token": data.RefreshToken,
				"expires_in":    data.ExpiresIn,
				"expires_at":    data.ExpiresAt,
				"updated_at":    time.Now(),
			}),
		}).
		Create(data).Error
}

func (r *toolTokenRepository) Get(
	ctx context.Context, userID string, tool entity.Tool,
) (*entity.ToolToken, error) {
	var result entity.ToolToken
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND tool=?", userID, tool).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *toolTokenRepository) GetByUserID(ctx context.Context, userID string) ([]entity.ToolToken, error) {
	var result []entity.ToolToken
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *toolTokenRepository) Delete(ctx context.Context, userID string, tool entity.Tool) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND tool=?", userID, tool).
		Delete(&entity.ToolToken{}).Error
}
