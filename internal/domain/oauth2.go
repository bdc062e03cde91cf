package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bouwconnect/backend/internal/common"
	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/bouwconnect/backend/pkg/crypto"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/popup"
	"github.com/bouwconnect/backend/pkg/pubsub"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	defaultStateTTL        = 10 * time.Minute
	defaultExchangeTimeout = 10 * time.Second
)

type OAuth2Domain interface {
	Begin(context.Context, *model.BeginAuthorizationRequest) (*model.BeginAuthorizationResponse, error)
	Callback(context.Context, *model.CompleteAuthorizationRequest) (*model.CompleteAuthorizationResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type oauth2Domain struct {
	providers     map[entity.Tool]authenticator.IOAuth2Provider
	stateRepo     repository.OAuth2StateRepository
	toolTokenRepo repository.ToolTokenRepository
	toolLinkRepo  repository.ToolLinkRepository
	publisher     pubsub.Publisher
}

func NewOAuth2Domain(
	providers map[entity.Tool]authenticator.IOAuth2Provider,
	stateRepo repository.OAuth2StateRepository,
	toolTokenRepo repository.ToolTokenRepository,
	toolLinkRepo repository.ToolLinkRepository,
	publisher pubsub.Publisher,
) OAuth2Domain {
	return &oauth2Domain{
		providers:     providers,
		stateRepo:     stateRepo,
		toolTokenRepo: toolTokenRepo,
		toolLinkRepo:  toolLinkRepo,
		publisher:     publisher,
	}
}

func (d *oauth2Domain) getProvider(s string) (entity.Tool, authenticator.IOAuth2Provider, error) {
	tool, err := parseTool(s)
	if err != nil {
		return "", nil, err
	}

	provider, ok := d.providers[tool]
	if !ok {
		return "", nil, errorx.New(errorx.UnknownTool, "Unknown tool %s", s)
	}

	return tool, provider, nil
}

func (d *oauth2Domain) Begin(
	ctx context.Context, req *model.BeginAuthorizationRequest,
) (*model.BeginAuthorizationResponse, error) {
	tool, provider, err := d.getProvider(req.Tool)
	if err != nil {
		return nil, err
	}

	if !provider.Configured() {
		return nil, errorx.New(errorx.Unconfigured, "%s Client ID niet geconfigureerd", provider.Name())
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate state nonce: %v", err)
		return nil, errorx.Unknown
	}

	state := &entity.OAuth2State{
		Tool:        tool,
		Nonce:       nonce,
		RedirectURI: provider.RedirectURI(),
		UserID:      xcontext.RequestUserID(ctx),
		CreatedAt:   time.Now(),
	}

	ttl := durationOrDefault(xcontext.Configs(ctx).Relay.StateTTL, defaultStateTTL)
	if err := d.stateRepo.Save(ctx, state, ttl); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save oauth2 state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BeginAuthorizationResponse{
		RedirectURL: provider.AuthCodeURL(nonce),
		State:       nonce,
	}, nil
}

func (d *oauth2Domain) Callback(
	ctx context.Context, req *model.CompleteAuthorizationRequest,
) (*model.CompleteAuthorizationResponse, error) {
	tool, provider, err := d.getProvider(req.Tool)
	if err != nil {
		return nil, err
	}

	if req.Code == "" {
		if req.Error != "" {
			xcontext.Logger(ctx).Warnf("Authorization of %s was refused: %s %s",
				tool, req.Error, req.ErrorDescription)
			return failedAuthorization(tool, http.StatusBadRequest), nil
		}

		return nil, errorx.New(errorx.MissingCode, "No authorization code provided")
	}

	state, ok := d.consumeState(ctx, tool, req)
	if !ok {
		return failedAuthorization(tool, http.StatusBadRequest), nil
	}

	timeout := durationOrDefault(xcontext.Configs(ctx).Relay.ExchangeTimeout, defaultExchangeTimeout)
	exchangeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	token, err := provider.Exchange(exchangeCtx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot exchange authorization code of %s: %v", tool, err)
		common.PromCounters[common.OAuth2ExchangeTotal].WithLabelValues(tool.String(), "failure").Inc()
		return failedAuthorization(tool, http.StatusInternalServerError), nil
	}

	common.PromCounters[common.OAuth2ExchangeTotal].WithLabelValues(tool.String(), "success").Inc()
	expiresIn := authenticator.ExpiresIn(token)

	if state.UserID != "" {
		toolToken := newToolToken(state.UserID, tool, token.AccessToken, token.RefreshToken, expiresIn)
		if err := d.saveConnection(ctx, toolToken); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot store token of %s: %v", tool, err)
		}
	}

	return &model.CompleteAuthorizationResponse{
		Status:   http.StatusOK,
		Envelope: popup.Token(tool.String(), token.AccessToken, token.RefreshToken, expiresIn),
	}, nil
}

// consumeState invalidates the state of the request and checks it belongs to
// this tool, this browser and this user.
func (d *oauth2Domain) consumeState(
	ctx context.Context, tool entity.Tool, req *model.CompleteAuthorizationRequest,
) (*entity.OAuth2State, bool) {
	if req.State == "" {
		xcontext.Logger(ctx).Warnf("Callback of %s has no state", tool)
		return nil, false
	}

	state, err := d.stateRepo.Consume(ctx, req.State)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			xcontext.Logger(ctx).Warnf("Unknown or expired state for %s", tool)
		} else {
			xcontext.Logger(ctx).Errorf("Cannot consume oauth2 state: %v", err)
		}
		return nil, false
	}

	if state.Tool != tool {
		xcontext.Logger(ctx).Warnf("State of %s is used for %s", state.Tool, tool)
		return nil, false
	}

	if req.SessionState != "" && req.SessionState != req.State {
		xcontext.Logger(ctx).Warnf("Mismatched session state for %s", tool)
		return nil, false
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID != "" {
		if state.UserID != "" && state.UserID != requestUserID {
			xcontext.Logger(ctx).Warnf("State of %s belongs to another user", tool)
			return nil, false
		}
		state.UserID = requestUserID
	}

	return state, true
}

func (d *oauth2Domain) saveConnection(ctx context.Context, token *entity.ToolToken) error {
	changed, err := upsertToolToken(ctx, d.toolTokenRepo, token)
	if err != nil {
		return err
	}

	if err := d.toolLinkRepo.UpdateStatus(ctx, token.UserID, token.Tool, entity.ToolLinkAdded); err != nil {
		return err
	}

	if changed {
		common.PublishIntegrationEvent(ctx, d.publisher, common.ToolConnectedEvent, token.UserID, token.Tool.String())
	}

	return nil
}

func failedAuthorization(tool entity.Tool, status int) *model.CompleteAuthorizationResponse {
	return &model.CompleteAuthorizationResponse{
		Status:   status,
		Envelope: popup.FailedAuthentication(tool.String()),
	}
}

func (d *oauth2Domain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	userID, err := checkRequestUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	tool, provider, err := d.getProvider(req.Tool)
	if err != nil {
		return nil, err
	}

	stored, err := d.toolTokenRepo.Get(ctx, userID, tool)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Token not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	if !stored.RefreshToken.Valid || stored.RefreshToken.String == "" {
		return nil, errorx.New(errorx.BadRequest, "No refresh token stored for %s", tool)
	}

	timeout := durationOrDefault(xcontext.Configs(ctx).Relay.ExchangeTimeout, defaultExchangeTimeout)
	refreshCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	token, err := provider.Refresh(refreshCtx, stored.RefreshToken.String)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refresh token of %s: %v", tool, err)
		return nil, errorx.New(errorx.ProviderExchange, "Cannot refresh token of %s", tool)
	}

	// Providers may keep the refresh token and omit it from the response.
	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = stored.RefreshToken.String
	}

	toolToken := newToolToken(userID, tool, token.AccessToken, refreshToken, authenticator.ExpiresIn(token))
	if err := d.toolTokenRepo.Upsert(ctx, toolToken); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store refreshed token: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishIntegrationEvent(ctx, d.publisher, common.TokenRefreshedEvent, userID, tool.String())

	resp := &model.RefreshTokenResponse{
		AccessToken: toolToken.AccessToken,
		ExpiresIn:   toolToken.ExpiresIn,
	}
	if toolToken.ExpiresAt.Valid {
		resp.ExpiresAt = toolToken.ExpiresAt.Time.Format(time.RFC3339)
	}

	return resp, nil
}
