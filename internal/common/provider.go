package common

import (
	"context"
	"strings"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/authenticator"
)

// ToolEndpoints maps every tool to the identity provider it authorizes with.
// Tools of the same vendor share the vendor's credentials.
var ToolEndpoints = map[entity.Tool]authenticator.Endpoint{
	entity.MSProject: authenticator.Microsoft,
	entity.Excel:     authenticator.Microsoft.With(map[string]string{"prompt": "select_account"}),
	entity.AutoCAD:   authenticator.Autodesk,
	entity.Revit:     authenticator.Autodesk,
	entity.Asta:      authenticator.Asta,
	entity.Solibri:   authenticator.Solibri,
	entity.WhatsApp:  authenticator.WhatsApp,
	entity.Bluebeam:  authenticator.Bluebeam,
}

// ProviderKey is the key of the provider credentials in the configs, for
// example "microsoft".
func ProviderKey(endpoint authenticator.Endpoint) string {
	return strings.ToLower(endpoint.EnvPrefix)
}

// NewOAuth2Providers builds the provider of every tool. Unconfigured providers
// are still returned, they refuse to start a flow.
func NewOAuth2Providers(
	ctx context.Context, cfg config.Configs,
) (map[entity.Tool]authenticator.IOAuth2Provider, error) {
	providers := map[entity.Tool]authenticator.IOAuth2Provider{}
	for _, tool := range entity.Tools() {
		endpoint := ToolEndpoints[tool]
		provider, err := authenticator.NewOAuth2Provider(
			ctx,
			tool.String(),
			endpoint,
			cfg.Providers[ProviderKey(endpoint)],
			cfg.RedirectBaseURL(),
		)
		if err != nil {
			return nil, err
		}

		providers[tool] = provider
	}

	return providers, nil
}
