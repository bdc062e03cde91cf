package integration

import (
	"context"
	"fmt"
	"strings"

	"github.com/bouwconnect/backend/pkg/api"
)

type httpRelay struct {
	apiGenerator api.Generator
	accessToken  string
}

// NewHTTPRelay calls the relay at baseURL on behalf of the app user owning
// accessToken.
func NewHTTPRelay(baseURL, accessToken string) *httpRelay {
	return &httpRelay{
		apiGenerator: api.NewGenerator(strings.TrimSuffix(baseURL, "/")),
		accessToken:  accessToken,
	}
}

func (r *httpRelay) opts() []api.Opt {
	if r.accessToken == "" {
		return nil
	}

	return []api.Opt{api.OAuth2("Bearer", r.accessToken)}
}

func (r *httpRelay) StoreToken(ctx context.Context, token *TokenRecord) error {
	body := api.JSON{
		"userId":      token.UserID,
		"toolId":      token.ToolID,
		"accessToken": token.AccessToken,
	}
	if token.RefreshToken != "" {
		body["refreshToken"] = token.RefreshToken
	}
	if token.ExpiresIn > 0 {
		body["expiresIn"] = token.ExpiresIn
	}

	resp, err := r.apiGenerator.New("/user/tokens").Body(body).POST(ctx, r.opts()...)
	if err != nil {
		return err
	}

	return checkResponse(resp)
}

func (r *httpRelay) Disconnect(ctx context.Context, userID, tool string) error {
	resp, err := r.apiGenerator.New("/user/tools/disconnect").
		Body(api.JSON{"userId": userID, "toolId": tool}).
		POST(ctx, r.opts()...)
	if err != nil {
		return err
	}

	return checkResponse(resp)
}

func (r *httpRelay) Tools(ctx context.Context, userID string) ([]string, error) {
	resp, err := r.apiGenerator.New("/user/tools").
		Query(api.Parameter{"userId": userID}).
		GET(ctx, r.opts()...)
	if err != nil {
		return nil, err
	}

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result struct {
		Tools []string `json:"tools"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}

	return result.Tools, nil
}

func checkResponse(resp *api.Response) error {
	if resp.OK() {
		return nil
	}

	if body, ok := resp.Body.(api.JSON); ok {
		if message, err := body.GetString("error"); err == nil && message != "" {
			return fmt.Errorf("relay responded %d: %s", resp.Code, message)
		}
	}

	return fmt.Errorf("relay responded %d", resp.Code)
}
