package catalog

import (
	"context"
	"errors"

	"github.com/bouwconnect/backend/pkg/xcontext"
)

// fallbackCatalog serves listings from the live catalog and degrades to the
// static one on any failure or an empty result.
type fallbackCatalog struct {
	live   Catalog
	static *staticCatalog
}

func NewFallbackCatalog(live Catalog, static *staticCatalog) *fallbackCatalog {
	return &fallbackCatalog{live: live, static: static}
}

func (c *fallbackCatalog) Projects(ctx context.Context, tool, accessToken string) ([]Project, error) {
	if accessToken != "" {
		projects, err := c.live.Projects(ctx, tool, accessToken)
		if err == nil && len(projects) > 0 {
			return projects, nil
		}
		c.logFallback(ctx, "projects", tool, err)
	}

	return c.static.Projects(ctx, tool, accessToken)
}

func (c *fallbackCatalog) Files(ctx context.Context, tool, accessToken string) ([]File, error) {
	if accessToken != "" {
		files, err := c.live.Files(ctx, tool, accessToken)
		if err == nil && len(files) > 0 {
			return files, nil
		}
		c.logFallback(ctx, "files", tool, err)
	}

	return c.static.Files(ctx, tool, accessToken)
}

func (c *fallbackCatalog) DownloadURL(ctx context.Context, tool, accessToken, fileID string) (string, error) {
	if c.static.Has(tool, fileID) {
		return c.static.DownloadURL(ctx, tool, accessToken, fileID)
	}

	return c.live.DownloadURL(ctx, tool, accessToken, fileID)
}

func (c *fallbackCatalog) PreviewURL(ctx context.Context, tool, accessToken, fileID string) (string, error) {
	if c.static.Has(tool, fileID) {
		return c.static.PreviewURL(ctx, tool, accessToken, fileID)
	}

	return c.live.PreviewURL(ctx, tool, accessToken, fileID)
}

func (c *fallbackCatalog) logFallback(ctx context.Context, what, tool string, err error) {
	switch {
	case err == nil:
		xcontext.Logger(ctx).Infof("Live %s of %s is empty, use fallback", what, tool)
	case errors.Is(err, ErrNotSupported):
	default:
		xcontext.Logger(ctx).Warnf("Cannot get live %s of %s, use fallback: %v", what, tool, err)
	}
}
