package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bouwconnect/backend/internal/common"
	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/pubsub"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	IntegrationConnected    = "connected"
	IntegrationNotConnected = "not_connected"
)

type UserToolDomain interface {
	StoreToken(context.Context, *model.StoreTokenRequest) (*model.StoreTokenResponse, error)
	GetToken(context.Context, *model.GetTokenRequest) (*model.GetTokenResponse, error)
	GetTools(context.Context, *model.GetToolsRequest) (*model.GetToolsResponse, error)
	SetTools(context.Context, *model.SetToolsRequest) (*model.SetToolsResponse, error)
	Disconnect(context.Context, *model.DisconnectToolRequest) (*model.DisconnectToolResponse, error)
	GetIntegrations(context.Context, *model.GetIntegrationsRequest) (*model.GetIntegrationsResponse, error)
}

type userToolDomain struct {
	toolTokenRepo repository.ToolTokenRepository
	toolLinkRepo  repository.ToolLinkRepository
	publisher     pubsub.Publisher
}

func NewUserToolDomain(
	toolTokenRepo repository.ToolTokenRepository,
	toolLinkRepo repository.ToolLinkRepository,
	publisher pubsub.Publisher,
) UserToolDomain {
	return &userToolDomain{
		toolTokenRepo: toolTokenRepo,
		toolLinkRepo:  toolLinkRepo,
		publisher:     publisher,
	}
}

func (d *userToolDomain) StoreToken(
	ctx context.Context, req *model.StoreTokenRequest,
) (*model.StoreTokenResponse, error) {
	userID, err := checkRequestUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	tool, err := parseTool(req.ToolID)
	if err != nil {
		return nil, err
	}

	token := newToolToken(userID, tool, req.AccessToken, req.RefreshToken, req.ExpiresIn)
	changed, err := upsertToolToken(ctx, d.toolTokenRepo, token)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store token: %v", err)
		return nil, errorx.Unknown
	}

	if changed {
		if err := d.toolLinkRepo.UpdateStatus(ctx, userID, tool, entity.ToolLinkAdded); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update tool link status: %v", err)
			return nil, errorx.Unknown
		}

		common.PublishIntegrationEvent(ctx, d.publisher, common.ToolConnectedEvent, userID, tool.String())
	}

	return &model.StoreTokenResponse{Success: true}, nil
}

func (d *userToolDomain) GetToken(
	ctx context.Context, req *model.GetTokenRequest,
) (*model.GetTokenResponse, error) {
	userID, err := checkRequestUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	tool, err := parseTool(req.ToolID)
	if err != nil {
		return nil, err
	}

	token, err := d.toolTokenRepo.Get(ctx, userID, tool)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Token not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTokenResponse{Token: convertToolToken(token)}, nil
}

func (d *userToolDomain) GetTools(
	ctx context.Context, req *model.GetToolsRequest,
) (*model.GetToolsResponse, error) {
	userID, err := checkRequestUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	links, err := d.toolLinkRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tool links: %v", err)
		return nil, errorx.Unknown
	}

	tools := []string{}
	for _, link := range links {
		tools = append(tools, link.Tool.String())
	}

	return &model.GetToolsResponse{Tools: tools}, nil
}

func (d *userToolDomain) SetTools(
	ctx context.Context, req *model.SetToolsRequest,
) (*model.SetToolsResponse, error) {
	userID, err := checkRequestUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	existingLinks, err := d.toolLinkRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tool links: %v", err)
		return nil, errorx.Unknown
	}

	statuses := map[entity.Tool]entity.ToolLinkStatus{}
	for _, link := range existingLinks {
		statuses[link.Tool] = link.Status
	}

	links := []entity.ToolLink{}
	tools := []string{}
	seen := map[entity.Tool]bool{}
	for _, s := range req.Tools {
		tool, err := parseTool(s)
		if err != nil {
			return nil, err
		}

		if seen[tool] {
			continue
		}
		seen[tool] = true

		status, ok := statuses[tool]
		if !ok {
			status = entity.ToolLinkAdded
		}

		links = append(links, entity.ToolLink{
			UserID:   userID,
			Tool:     tool,
			Position: len(links),
			Status:   status,
		})
		tools = append(tools, tool.String())
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.toolLinkRepo.Replace(ctx, userID, links); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot replace tool links: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit tool links: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetToolsResponse{Success: true, Tools: tools}, nil
}

func (d *userToolDomain) Disconnect(
	ctx context.Context, req *model.DisconnectToolRequest,
) (*model.DisconnectToolResponse, error) {
	userID, err := checkRequestUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	tool, err := parseTool(req.ToolID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.toolTokenRepo.Delete(ctx, userID, tool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete token: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.toolLinkRepo.UpdateStatus(ctx, userID, tool, entity.ToolLinkDisconnected); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update tool link status: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit disconnect: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishIntegrationEvent(ctx, d.publisher, common.ToolDisconnectedEvent, userID, tool.String())
	return &model.DisconnectToolResponse{Success: true}, nil
}

func (d *userToolDomain) GetIntegrations(
	ctx context.Context, req *model.GetIntegrationsRequest,
) (*model.GetIntegrationsResponse, error) {
	userID, err := checkRequestUser(ctx, "")
	if err != nil {
		return nil, err
	}

	links, err := d.toolLinkRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tool links: %v", err)
		return nil, errorx.Unknown
	}

	tokens, err := d.toolTokenRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tokens: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	live := map[entity.Tool]bool{}
	for i := range tokens {
		live[tokens[i].Tool] = tokens[i].Live(now)
	}

	integrations := []model.Integration{}
	for _, link := range links {
		status := IntegrationNotConnected
		if live[link.Tool] {
			status = IntegrationConnected
		}

		integrations = append(integrations, model.Integration{
			Tool:   link.Tool.String(),
			Status: status,
		})
	}

	return &model.GetIntegrationsResponse{Integrations: integrations}, nil
}
