package repository

import (
	"context"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

type ToolLinkRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]entity.ToolLink, error)
	Get(ctx context.Context, userID string, tool entity.Tool) (*entity.ToolLink, error)

	// Replace makes links the whole link set of the user. Tools missing from
	// links are removed, their tokens are left untouched.
	Replace(ctx context.Context, userID string, links []entity.ToolLink) error

	// UpdateStatus changes the status of an existing link. It is a no-op when
	// the user has not added the tool.
	UpdateStatus(ctx context.Context, userID string, tool entity.Tool, status entity.ToolLinkStatus) error
}

type toolLinkRepository struct{}

func NewToolLinkRepository() *toolLinkRepository {
	return &toolLinkRepository{}
}

func (r *toolLinkRepository) GetByUserID(ctx context.Context, userID string) ([]entity.ToolLink, error) {
	var result []entity.ToolLink
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("position ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *toolLinkRepository) Get(
	ctx context.Context, userID string, tool entity.Tool,
) (*entity.ToolLink, error) {
	var result entity.ToolLink
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND tool=?", userID, tool).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *toolLinkRepository) Replace(ctx context.Context, userID string, links []entity.ToolLink) error {
	db := xcontext.DB(ctx)
	if err := db.Where("user_id=?", userID).Delete(&entity.ToolLink{}).Error; err != nil {
		return err
	}

	if len(links) == 0 {
		return nil
	}

	return db.Create(&links).Error
}

func (r *toolLinkRepository) UpdateStatus(
	ctx context.Context, userID string, tool entity.Tool, status entity.ToolLinkStatus,
) error {
	return xcontext.DB(ctx).
		Model(&entity.ToolLink{}).
		Where("user_id=? AND tool=?", userID, tool).
		Update("status", status).Error
}
