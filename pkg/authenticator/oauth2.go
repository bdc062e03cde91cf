package authenticator

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bouwconnect/backend/config"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

var placeholderClientIDs = []string{"mock-client-id"}

type OAuth2Provider struct {
	oauth2.Config

	tool     string
	name     string
	extras   []oauth2.AuthCodeOption
	clientID string
	client   *http.Client
}

// NewOAuth2Provider builds the provider of a tool from the built-in endpoint
// and the configured credentials. When an issuer is configured, the endpoints
// are discovered from it instead. The redirect uri of the tool is
// {redirectBase}/{tool}/callback.
func NewOAuth2Provider(
	ctx context.Context,
	tool string,
	endpoint Endpoint,
	cfg config.OAuth2Config,
	redirectBase string,
) (*OAuth2Provider, error) {
	oauth2Endpoint := oauth2.Endpoint{
		AuthURL:   endpoint.AuthURL,
		TokenURL:  endpoint.TokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}

	if cfg.Issuer != "" {
		provider, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return nil, fmt.Errorf("cannot discover issuer %s: %w", cfg.Issuer, err)
		}

		oauth2Endpoint = provider.Endpoint()
		oauth2Endpoint.AuthStyle = oauth2.AuthStyleInParams
	}

	if cfg.AuthURL != "" {
		oauth2Endpoint.AuthURL = cfg.AuthURL
	}

	if cfg.TokenURL != "" {
		oauth2Endpoint.TokenURL = cfg.TokenURL
	}

	extras := []oauth2.AuthCodeOption{}
	for k, v := range endpoint.Extras {
		extras = append(extras, oauth2.SetAuthURLParam(k, v))
	}

	return &OAuth2Provider{
		Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2Endpoint,
			RedirectURL:  fmt.Sprintf("%s/%s/callback", strings.TrimSuffix(redirectBase, "/"), tool),
			Scopes:       endpoint.Scopes,
		},
		tool:     tool,
		name:     endpoint.Name,
		extras:   extras,
		clientID: cfg.ClientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// WithHTTPClient replaces the client used to reach the token endpoint.
func (p *OAuth2Provider) WithHTTPClient(client *http.Client) *OAuth2Provider {
	p.client = client
	return p
}

func (p *OAuth2Provider) Tool() string {
	return p.tool
}

func (p *OAuth2Provider) Name() string {
	return p.name
}

func (p *OAuth2Provider) Configured() bool {
	if p.clientID == "" || strings.HasPrefix(p.clientID, "your-") {
		return false
	}

	for _, placeholder := range placeholderClientIDs {
		if p.clientID == placeholder {
			return false
		}
	}

	return true
}

func (p *OAuth2Provider) RedirectURI() string {
	return p.RedirectURL
}

func (p *OAuth2Provider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state, p.extras...)
}

func (p *OAuth2Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	return p.Config.Exchange(ctx, code)
}

func (p *OAuth2Provider) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	// An already expired token forces the source to hit the token endpoint.
	source := p.Config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Unix(1, 0),
	})

	return source.Token()
}

// ExpiresIn returns the lifetime of the token in seconds, as sent by the
// provider when available.
func ExpiresIn(token *oauth2.Token) int64 {
	switch v := token.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}

	if token.Expiry.IsZero() {
		return 0
	}

	return int64(math.Round(time.Until(token.Expiry).Seconds()))
}
