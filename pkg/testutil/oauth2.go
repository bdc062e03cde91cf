package testutil

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

type MockOAuth2Provider struct {
	ToolName     string
	ProviderName string
	Unconfigured bool

	ExchangeFunc func(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshFunc  func(ctx context.Context, refreshToken string) (*oauth2.Token, error)

	ExchangeCalls int
}

func NewMockOAuth2Provider(tool, name string) *MockOAuth2Provider {
	return &MockOAuth2Provider{ToolName: tool, ProviderName: name}
}

func (m *MockOAuth2Provider) Tool() string {
	return m.ToolName
}

func (m *MockOAuth2Provider) Name() string {
	return m.ProviderName
}

func (m *MockOAuth2Provider) Configured() bool {
	return !m.Unconfigured
}

func (m *MockOAuth2Provider) RedirectURI() string {
	return fmt.Sprintf("http://localhost:4000/%s/callback", m.ToolName)
}

func (m *MockOAuth2Provider) AuthCodeURL(state string) string {
	return fmt.Sprintf("https://provider.test/authorize?client_id=client-id&redirect_uri=%s&response_type=code&state=%s",
		m.RedirectURI(), state)
}

func (m *MockOAuth2Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	m.ExchangeCalls++
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}

	return nil, fmt.Errorf("exchange is not mocked")
}

func (m *MockOAuth2Provider) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}

	return nil, fmt.Errorf("refresh is not mocked")
}
