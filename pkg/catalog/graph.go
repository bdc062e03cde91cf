package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bouwconnect/backend/pkg/api"
	"golang.org/x/exp/slices"
)

var graphFileExtensions = map[string][]string{
	"excel":     {".xlsx", ".xls", ".csv"},
	"msproject": {".mpp"},
}

// graphCatalog reads the user's content from Microsoft Graph. Only the tools
// backed by a Microsoft account are served.
type graphCatalog struct {
	apiGenerator api.Generator
}

func NewGraphCatalog(apiGenerator api.Generator) *graphCatalog {
	return &graphCatalog{apiGenerator: apiGenerator}
}

func (c *graphCatalog) Supports(tool string) bool {
	_, ok := graphFileExtensions[tool]
	return ok
}

type graphPlan struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	CreatedDateTime string `json:"createdDateTime"`
}

type graphDriveItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Size                 int64  `json:"size"`
	ETag                 string `json:"eTag"`
	WebURL               string `json:"webUrl"`
	DownloadURL          string `json:"@microsoft.graph.downloadUrl"`
	LastModifiedDateTime string `json:"lastModifiedDateTime"`
	ParentReference      struct {
		Path string `json:"path"`
	} `json:"parentReference"`
}

func (c *graphCatalog) Projects(ctx context.Context, tool, accessToken string) ([]Project, error) {
	if tool != "msproject" {
		return nil, ErrNotSupported
	}

	var result struct {
		Value []graphPlan `json:"value"`
	}
	if err := c.get(ctx, accessToken, &result, nil, "/v1.0/me/planner/plans"); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(result.Value))
	for _, plan := range result.Value {
		projects = append(projects, Project{
			ID:     plan.ID,
			Name:   plan.Title,
			Status: "on-track",
		})
	}

	return projects, nil
}

func (c *graphCatalog) Files(ctx context.Context, tool, accessToken string) ([]File, error) {
	extensions, ok := graphFileExtensions[tool]
	if !ok {
		return nil, ErrNotSupported
	}

	var result struct {
		Value []graphDriveItem `json:"value"`
	}
	if err := c.get(ctx, accessToken, &result, nil, "/v1.0/me/drive/root/children"); err != nil {
		return nil, err
	}

	files := []File{}
	for _, item := range result.Value {
		name := strings.ToLower(item.Name)
		matched := slices.ContainsFunc(extensions, func(ext string) bool {
			return strings.HasSuffix(name, ext)
		})
		if !matched {
			continue
		}

		files = append(files, File{
			ID:           item.ID,
			Name:         item.Name,
			Type:         fileType(item.Name),
			Size:         formatFileSize(item.Size),
			LastModified: formatTime(item.LastModifiedDateTime),
			Status:       "active",
			Project:      "OneDrive",
			Location:     item.ParentReference.Path,
			ETag:         item.ETag,
		})
	}

	return files, nil
}

func (c *graphCatalog) DownloadURL(ctx context.Context, tool, accessToken, fileID string) (string, error) {
	if !c.Supports(tool) {
		return "", ErrNotSupported
	}

	var item graphDriveItem
	if err := c.get(ctx, accessToken, &item, nil, "/v1.0/me/drive/items/%s", url.PathEscape(fileID)); err != nil {
		return "", err
	}

	if item.DownloadURL == "" {
		return "", fmt.Errorf("no download url for item %s", fileID)
	}

	return item.DownloadURL, nil
}

func (c *graphCatalog) PreviewURL(ctx context.Context, tool, accessToken, fileID string) (string, error) {
	if !c.Supports(tool) {
		return "", ErrNotSupported
	}

	var item graphDriveItem
	query := api.Parameter{"$select": "webUrl"}
	if err := c.get(ctx, accessToken, &item, query, "/v1.0/me/drive/items/%s", url.PathEscape(fileID)); err != nil {
		return "", err
	}

	if item.WebURL == "" {
		return "", fmt.Errorf("no preview url for item %s", fileID)
	}

	return item.WebURL, nil
}

func (c *graphCatalog) get(
	ctx context.Context, accessToken string, v any, query api.Parameter, path string, args ...any,
) error {
	if accessToken == "" {
		return fmt.Errorf("no access token")
	}

	client := c.apiGenerator.New(path, args...)
	if query != nil {
		client = client.Query(query)
	}

	resp, err := client.GET(ctx, api.OAuth2("Bearer", accessToken))
	if err != nil {
		return err
	}

	if !resp.OK() {
		return fmt.Errorf("graph responded %d: %s", resp.Code, resp.RawBody)
	}

	return resp.Decode(v)
}

func formatTime(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}

	return t.UTC().Format(time.RFC3339)
}
