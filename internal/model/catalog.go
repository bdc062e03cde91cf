package model

import (
	"net/http"

	"github.com/bouwconnect/backend/pkg/catalog"
)

type GetProjectsRequest struct {
	Tool string `uri:"tool"`
}

type GetProjectsResponse struct {
	Projects []catalog.Project `json:"projects"`
}

type GetFilesRequest struct {
	Tool string `uri:"tool"`
}

type GetFilesResponse struct {
	Files []catalog.File `json:"files"`
}

type DownloadFileRequest struct {
	Tool   string `uri:"tool"`
	FileID string `uri:"id" validate:"required"`

	// NoRedirect asks for the URL in the body instead of a redirect.
	NoRedirect bool `form:"noRedirect"`
}

type DownloadFileResponse struct {
	DownloadURL string `json:"downloadUrl"`

	redirect bool
}

func NewDownloadFileResponse(url string, redirect bool) *DownloadFileResponse {
	return &DownloadFileResponse{DownloadURL: url, redirect: redirect}
}

// RedirectInfo returns a zero code when the URL is returned in the body.
func (r *DownloadFileResponse) RedirectInfo() (int, string) {
	if !r.redirect {
		return 0, ""
	}

	return http.StatusFound, r.DownloadURL
}

type PreviewFileRequest struct {
	Tool   string `uri:"tool"`
	FileID string `uri:"id" validate:"required"`
}

type PreviewFileResponse struct {
	PreviewURL string `json:"previewUrl"`
}
