package catalog

import (
	"context"
	"fmt"

	"github.com/bouwconnect/backend/pkg/storage"
)

// staticCatalog serves fixed content. Its files can be downloaded from object
// storage under fallback/<tool>/<name>.
type staticCatalog struct {
	storage  storage.Storage
	projects map[string][]Project
	files    map[string][]File
}

func NewStaticCatalog(storage storage.Storage) *staticCatalog {
	return &staticCatalog{
		storage:  storage,
		projects: staticProjects,
		files:    staticFiles,
	}
}

func (c *staticCatalog) Projects(ctx context.Context, tool, _ string) ([]Project, error) {
	projects, ok := c.projects[tool]
	if !ok {
		return nil, ErrNotSupported
	}

	return append([]Project{}, projects...), nil
}

func (c *staticCatalog) Files(ctx context.Context, tool, _ string) ([]File, error) {
	files, ok := c.files[tool]
	if !ok {
		return nil, ErrNotSupported
	}

	return append([]File{}, files...), nil
}

// Has reports whether fileID belongs to the static files of the tool.
func (c *staticCatalog) Has(tool, fileID string) bool {
	_, ok := c.find(tool, fileID)
	return ok
}

func (c *staticCatalog) find(tool, fileID string) (File, bool) {
	for _, f := range c.files[tool] {
		if f.ID == fileID {
			return f, true
		}
	}

	return File{}, false
}

func (c *staticCatalog) DownloadURL(ctx context.Context, tool, _, fileID string) (string, error) {
	file, ok := c.find(tool, fileID)
	if !ok || c.storage == nil {
		return "", ErrNotSupported
	}

	return c.storage.DownloadURL(ctx, &storage.DownloadObject{
		Key:      fmt.Sprintf("fallback/%s/%s", tool, file.Name),
		FileName: file.Name,
	})
}

func (c *staticCatalog) PreviewURL(ctx context.Context, tool, _, fileID string) (string, error) {
	file, ok := c.find(tool, fileID)
	if !ok || c.storage == nil {
		return "", ErrNotSupported
	}

	return c.storage.DownloadURL(ctx, &storage.DownloadObject{
		Key: fmt.Sprintf("fallback/%s/%s", tool, file.Name),
	})
}
