package catalog

import (
	"context"
	"errors"
)

// ErrNotSupported is returned by a catalog which cannot serve the tool or the
// item.
var ErrNotSupported = errors.New("not supported by this catalog")

type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         string `json:"size"`
	LastModified string `json:"lastModified"`
	Status       string `json:"status"`
	Project      string `json:"project"`
	Location     string `json:"location,omitempty"`
	ETag         string `json:"etag,omitempty"`
}

// Catalog lists and resolves the read-only content of a tool on behalf of a
// user. accessToken is the user's token for the tool, it may be empty.
type Catalog interface {
	Projects(ctx context.Context, tool, accessToken string) ([]Project, error)
	Files(ctx context.Context, tool, accessToken string) ([]File, error)
	DownloadURL(ctx context.Context, tool, accessToken, fileID string) (string, error)
	PreviewURL(ctx context.Context, tool, accessToken, fileID string) (string, error)
}
