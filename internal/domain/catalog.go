package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/catalog"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const defaultProxyTimeout = 10 * time.Second

type CatalogDomain interface {
	GetProjects(context.Context, *model.GetProjectsRequest) (*model.GetProjectsResponse, error)
	GetFiles(context.Context, *model.GetFilesRequest) (*model.GetFilesResponse, error)
	Download(context.Context, *model.DownloadFileRequest) (*model.DownloadFileResponse, error)
	Preview(context.Context, *model.PreviewFileRequest) (*model.PreviewFileResponse, error)
}

type catalogDomain struct {
	catalog       catalog.Catalog
	toolTokenRepo repository.ToolTokenRepository
}

func NewCatalogDomain(
	catalog catalog.Catalog,
	toolTokenRepo repository.ToolTokenRepository,
) CatalogDomain {
	return &catalogDomain{
		catalog:       catalog,
		toolTokenRepo: toolTokenRepo,
	}
}

// accessToken returns the live token of the request user for the tool, or an
// empty string for anonymous users and users without a usable token.
func (d *catalogDomain) accessToken(ctx context.Context, tool entity.Tool) string {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return ""
	}

	token, err := d.toolTokenRepo.Get(ctx, userID, tool)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		}
		return ""
	}

	if !token.Live(time.Now()) {
		return ""
	}

	return token.AccessToken
}

func (d *catalogDomain) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := durationOrDefault(xcontext.Configs(ctx).Relay.ProxyTimeout, defaultProxyTimeout)
	return context.WithTimeout(ctx, timeout)
}

func (d *catalogDomain) GetProjects(
	ctx context.Context, req *model.GetProjectsRequest,
) (*model.GetProjectsResponse, error) {
	tool, err := parseTool(req.Tool)
	if err != nil {
		return nil, err
	}

	proxyCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	projects, err := d.catalog.Projects(proxyCtx, tool.String(), d.accessToken(ctx, tool))
	if err != nil {
		if errors.Is(err, catalog.ErrNotSupported) {
			return &model.GetProjectsResponse{Projects: []catalog.Project{}}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get projects of %s: %v", tool, err)
		return nil, errorx.New(errorx.DownstreamProxy, "Cannot get projects of %s", tool)
	}

	return &model.GetProjectsResponse{Projects: projects}, nil
}

func (d *catalogDomain) GetFiles(
	ctx context.Context, req *model.GetFilesRequest,
) (*model.GetFilesResponse, error) {
	tool, err := parseTool(req.Tool)
	if err != nil {
		return nil, err
	}

	proxyCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	files, err := d.catalog.Files(proxyCtx, tool.String(), d.accessToken(ctx, tool))
	if err != nil {
		if errors.Is(err, catalog.ErrNotSupported) {
			return &model.GetFilesResponse{Files: []catalog.File{}}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get files of %s: %v", tool, err)
		return nil, errorx.New(errorx.DownstreamProxy, "Cannot get files of %s", tool)
	}

	return &model.GetFilesResponse{Files: files}, nil
}

func (d *catalogDomain) Download(
	ctx context.Context, req *model.DownloadFileRequest,
) (*model.DownloadFileResponse, error) {
	tool, err := parseTool(req.Tool)
	if err != nil {
		return nil, err
	}

	proxyCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	url, err := d.catalog.DownloadURL(proxyCtx, tool.String(), d.accessToken(ctx, tool), req.FileID)
	if err != nil {
		return nil, d.itemError(ctx, "download", tool, req.FileID, err)
	}

	return model.NewDownloadFileResponse(url, !req.NoRedirect), nil
}

func (d *catalogDomain) Preview(
	ctx context.Context, req *model.PreviewFileRequest,
) (*model.PreviewFileResponse, error) {
	tool, err := parseTool(req.Tool)
	if err != nil {
		return nil, err
	}

	proxyCtx, cancel := d.withTimeout(ctx)
	defer cancel()

	url, err := d.catalog.PreviewURL(proxyCtx, tool.String(), d.accessToken(ctx, tool), req.FileID)
	if err != nil {
		return nil, d.itemError(ctx, "preview", tool, req.FileID, err)
	}

	return &model.PreviewFileResponse{PreviewURL: url}, nil
}

func (d *catalogDomain) itemError(ctx context.Context, action string, tool entity.Tool, fileID string, err error) error {
	if errors.Is(err, catalog.ErrNotSupported) {
		return errorx.New(errorx.NotFound, "File not found")
	}

	xcontext.Logger(ctx).Errorf("Cannot %s file %s of %s: %v", action, fileID, tool, err)
	return errorx.New(errorx.DownstreamProxy, "Cannot %s file", action)
}
