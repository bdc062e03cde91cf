package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/internal/common"
	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/popup"
	"github.com/bouwconnect/backend/pkg/testutil"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type oauth2Fixture struct {
	domain    OAuth2Domain
	provider  *testutil.MockOAuth2Provider
	stateRepo repository.OAuth2StateRepository
	publisher *testutil.MockPublisher
}

func newOAuth2Fixture() *oauth2Fixture {
	provider := testutil.NewMockOAuth2Provider("excel", "Microsoft")
	provider.ExchangeFunc = func(ctx context.Context, code string) (*oauth2.Token, error) {
		if code != "valid-code" {
			return nil, errors.New("invalid_grant")
		}

		return (&oauth2.Token{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		}).WithExtra(map[string]any{"expires_in": float64(3600)}), nil
	}

	unconfigured := testutil.NewMockOAuth2Provider("autocad", "Autodesk")
	unconfigured.Unconfigured = true

	stateRepo := repository.NewMemoryOAuth2StateRepository()
	publisher := &testutil.MockPublisher{}

	return &oauth2Fixture{
		domain: NewOAuth2Domain(
			map[entity.Tool]authenticator.IOAuth2Provider{
				entity.Excel:   provider,
				entity.AutoCAD: unconfigured,
			},
			stateRepo,
			repository.NewToolTokenRepository(),
			repository.NewToolLinkRepository(),
			publisher,
		),
		provider:  provider,
		stateRepo: stateRepo,
		publisher: publisher,
	}
}

func (f *oauth2Fixture) begin(t *testing.T, ctx context.Context, tool string) string {
	resp, err := f.domain.Begin(ctx, &model.BeginAuthorizationRequest{Tool: tool})
	require.NoError(t, err)
	return resp.State
}

func Test_oauth2Domain_Begin(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	f := newOAuth2Fixture()

	resp, err := f.domain.Begin(ctx, &model.BeginAuthorizationRequest{Tool: "excel"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.State)

	code, location := resp.RedirectInfo()
	require.Equal(t, http.StatusFound, code)

	u, err := url.Parse(location)
	require.NoError(t, err)
	require.Equal(t, resp.State, u.Query().Get("state"))
	require.Equal(t, "code", u.Query().Get("response_type"))
	require.Equal(t, map[string]any{model.SessionStateKey: resp.State}, resp.SessionInfo())

	state, err := f.stateRepo.Consume(ctx, resp.State)
	require.NoError(t, err)
	require.Equal(t, entity.Excel, state.Tool)
	require.Equal(t, testutil.User1.ID, state.UserID)
	require.Equal(t, "http://localhost:4000/excel/callback", state.RedirectURI)
}

func Test_oauth2Domain_Begin_Errors(t *testing.T) {
	ctx := testutil.MockContext()
	f := newOAuth2Fixture()

	_, err := f.domain.Begin(ctx, &model.BeginAuthorizationRequest{Tool: "sketchup"})
	require.ErrorIs(t, err, errorx.New(errorx.UnknownTool, ""))

	_, err = f.domain.Begin(ctx, &model.BeginAuthorizationRequest{Tool: "revit"})
	require.ErrorIs(t, err, errorx.New(errorx.UnknownTool, ""))

	_, err = f.domain.Begin(ctx, &model.BeginAuthorizationRequest{Tool: "autocad"})
	require.Equal(t, errorx.New(errorx.Unconfigured, "Autodesk Client ID niet geconfigureerd"), err)
}

func Test_oauth2Domain_Callback(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	f := newOAuth2Fixture()

	err := repository.NewToolLinkRepository().Replace(ctx, testutil.User1.ID, []entity.ToolLink{
		{UserID: testutil.User1.ID, Tool: entity.Excel, Status: entity.ToolLinkDisconnected},
	})
	require.NoError(t, err)

	state := f.begin(t, ctx, "excel")
	resp, err := f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{
		Tool:         "excel",
		Code:         "valid-code",
		State:        state,
		SessionState: state,
	})
	require.NoError(t, err)

	status, envelope := resp.HTMLInfo()
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, popup.Token("excel", "access-token", "refresh-token", 3600), envelope)
	require.Equal(t, 1, f.provider.ExchangeCalls)

	token, err := repository.NewToolTokenRepository().Get(ctx, testutil.User1.ID, entity.Excel)
	require.NoError(t, err)
	require.Equal(t, "access-token", token.AccessToken)
	require.Equal(t, sql.NullString{String: "refresh-token", Valid: true}, token.RefreshToken)
	require.Equal(t, int64(3600), token.ExpiresIn)
	require.True(t, token.ExpiresAt.Valid)

	link, err := repository.NewToolLinkRepository().Get(ctx, testutil.User1.ID, entity.Excel)
	require.NoError(t, err)
	require.Equal(t, entity.ToolLinkAdded, link.Status)

	require.Len(t, f.publisher.Packs, 1)
	var event common.IntegrationEvent
	require.NoError(t, json.Unmarshal(f.publisher.Packs[0].Msg, &event))
	require.Equal(t, common.ToolConnectedEvent, event.Type)
	require.Equal(t, "excel", event.Tool)
	require.NotEmpty(t, event.ID)

	// A state is consumed once.
	resp, err = f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{
		Tool:  "excel",
		Code:  "valid-code",
		State: state,
	})
	require.NoError(t, err)
	status, envelope = resp.HTMLInfo()
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, popup.FailedAuthentication("excel"), envelope)
	require.Equal(t, 1, f.provider.ExchangeCalls)
}

func Test_oauth2Domain_Callback_MissingCode(t *testing.T) {
	ctx := testutil.MockContext()
	f := newOAuth2Fixture()

	_, err := f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{Tool: "excel", State: "state"})
	require.Equal(t, errorx.New(errorx.MissingCode, "No authorization code provided"), err)

	resp, err := f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{
		Tool:  "excel",
		State: "state",
		Error: "access_denied",
	})
	require.NoError(t, err)
	status, envelope := resp.HTMLInfo()
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, popup.KindError, envelope.Kind)

	require.Equal(t, 0, f.provider.ExchangeCalls)
}

func Test_oauth2Domain_Callback_InvalidState(t *testing.T) {
	ctx := testutil.MockContext()

	tests := []struct {
		name string
		req  func(f *oauth2Fixture) *model.CompleteAuthorizationRequest
	}{
		{
			name: "no state",
			req: func(f *oauth2Fixture) *model.CompleteAuthorizationRequest {
				return &model.CompleteAuthorizationRequest{Tool: "excel", Code: "valid-code"}
			},
		},
		{
			name: "unknown state",
			req: func(f *oauth2Fixture) *model.CompleteAuthorizationRequest {
				return &model.CompleteAuthorizationRequest{Tool: "excel", Code: "valid-code", State: "forged"}
			},
		},
		{
			name: "expired state",
			req: func(f *oauth2Fixture) *model.CompleteAuthorizationRequest {
				state := &entity.OAuth2State{Tool: entity.Excel, Nonce: "expired"}
				require.NoError(t, f.stateRepo.Save(ctx, state, -time.Second))
				return &model.CompleteAuthorizationRequest{Tool: "excel", Code: "valid-code", State: "expired"}
			},
		},
		{
			name: "state of another tool",
			req: func(f *oauth2Fixture) *model.CompleteAuthorizationRequest {
				state := &entity.OAuth2State{Tool: entity.MSProject, Nonce: "other-tool"}
				require.NoError(t, f.stateRepo.Save(ctx, state, time.Minute))
				return &model.CompleteAuthorizationRequest{Tool: "excel", Code: "valid-code", State: "other-tool"}
			},
		},
		{
			name: "state of another browser",
			req: func(f *oauth2Fixture) *model.CompleteAuthorizationRequest {
				state := f.begin(t, ctx, "excel")
				return &model.CompleteAuthorizationRequest{
					Tool:         "excel",
					Code:         "valid-code",
					State:        state,
					SessionState: "another",
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOAuth2Fixture()

			resp, err := f.domain.Callback(ctx, tt.req(f))
			require.NoError(t, err)

			status, envelope := resp.HTMLInfo()
			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, popup.FailedAuthentication("excel"), envelope)
			require.Equal(t, 0, f.provider.ExchangeCalls)
		})
	}
}

func Test_oauth2Domain_Callback_ExchangeFailure(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	f := newOAuth2Fixture()

	state := f.begin(t, ctx, "excel")
	resp, err := f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{
		Tool:  "excel",
		Code:  "expired-code",
		State: state,
	})
	require.NoError(t, err)

	status, envelope := resp.HTMLInfo()
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, map[string]any{"error": "excel OAuth authentication failed"}, envelope.Payload())

	_, err = repository.NewToolTokenRepository().Get(ctx, testutil.User1.ID, entity.Excel)
	require.Error(t, err)
	require.Empty(t, f.publisher.Packs)
}

func Test_oauth2Domain_Callback_Anonymous(t *testing.T) {
	ctx := testutil.MockContext()
	f := newOAuth2Fixture()

	state := f.begin(t, ctx, "excel")
	resp, err := f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{
		Tool:  "excel",
		Code:  "valid-code",
		State: state,
	})
	require.NoError(t, err)

	status, _ := resp.HTMLInfo()
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, f.publisher.Packs)
}

func Test_oauth2Domain_Refresh(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	f := newOAuth2Fixture()
	f.provider.RefreshFunc = func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
		require.Equal(t, "refresh-1", refreshToken)
		return &oauth2.Token{AccessToken: "access-2", Expiry: time.Now().Add(time.Hour)}, nil
	}

	_, err := f.domain.Refresh(ctx, &model.RefreshTokenRequest{Tool: "excel"})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	toolTokenRepo := repository.NewToolTokenRepository()
	require.NoError(t, toolTokenRepo.Upsert(ctx, &entity.ToolToken{
		UserID:       testutil.User1.ID,
		Tool:         entity.Excel,
		AccessToken:  "access-1",
		RefreshToken: sql.NullString{String: "refresh-1", Valid: true},
	}))

	_, err = f.domain.Refresh(ctx, &model.RefreshTokenRequest{Tool: "excel", UserID: testutil.User2.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	resp, err := f.domain.Refresh(ctx, &model.RefreshTokenRequest{Tool: "excel"})
	require.NoError(t, err)
	require.Equal(t, "access-2", resp.AccessToken)
	require.InDelta(t, 3600, resp.ExpiresIn, 5)

	token, err := toolTokenRepo.Get(ctx, testutil.User1.ID, entity.Excel)
	require.NoError(t, err)
	require.Equal(t, "access-2", token.AccessToken)
	require.Equal(t, "refresh-1", token.RefreshToken.String)
	require.Len(t, f.publisher.Packs, 1)
}

func Test_oauth2Domain_Refresh_Failure(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	f := newOAuth2Fixture()

	require.NoError(t, repository.NewToolTokenRepository().Upsert(ctx, &entity.ToolToken{
		UserID:      testutil.User1.ID,
		Tool:        entity.Excel,
		AccessToken: "access-1",
	}))

	_, err := f.domain.Refresh(ctx, &model.RefreshTokenRequest{Tool: "excel"})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))

	require.NoError(t, repository.NewToolTokenRepository().Upsert(ctx, &entity.ToolToken{
		UserID:       testutil.User1.ID,
		Tool:         entity.Excel,
		AccessToken:  "access-1",
		RefreshToken: sql.NullString{String: "revoked", Valid: true},
	}))

	_, err = f.domain.Refresh(ctx, &model.RefreshTokenRequest{Tool: "excel"})
	require.ErrorIs(t, err, errorx.New(errorx.ProviderExchange, ""))
}

// newSlowProviderFixture wires a real excel provider whose token endpoint
// only answers after the caller gave up, and shortens the exchange timeout.
func newSlowProviderFixture(t *testing.T, ctx context.Context) (context.Context, *oauth2Fixture) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	t.Cleanup(server.Close)

	cfg := xcontext.Configs(ctx)
	cfg.Relay.ExchangeTimeout = 100 * time.Millisecond
	ctx = xcontext.WithConfigs(ctx, cfg)

	provider, err := authenticator.NewOAuth2Provider(ctx, "excel", authenticator.Microsoft,
		config.OAuth2Config{ClientID: "client-id", ClientSecret: "client-secret", TokenURL: server.URL},
		cfg.RedirectBaseURL(),
	)
	require.NoError(t, err)

	stateRepo := repository.NewMemoryOAuth2StateRepository()
	publisher := &testutil.MockPublisher{}

	return ctx, &oauth2Fixture{
		domain: NewOAuth2Domain(
			map[entity.Tool]authenticator.IOAuth2Provider{entity.Excel: provider},
			stateRepo,
			repository.NewToolTokenRepository(),
			repository.NewToolLinkRepository(),
			publisher,
		),
		stateRepo: stateRepo,
		publisher: publisher,
	}
}

func Test_oauth2Domain_Callback_ExchangeTimeout(t *testing.T) {
	ctx, f := newSlowProviderFixture(t, testutil.MockContextWithUserID(nil, testutil.User1.ID))

	state := f.begin(t, ctx, "excel")

	start := time.Now()
	resp, err := f.domain.Callback(ctx, &model.CompleteAuthorizationRequest{
		Tool:  "excel",
		Code:  "valid-code",
		State: state,
	})
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)

	status, envelope := resp.HTMLInfo()
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, map[string]any{"error": "excel OAuth authentication failed"}, envelope.Payload())

	_, err = repository.NewToolTokenRepository().Get(ctx, testutil.User1.ID, entity.Excel)
	require.Error(t, err)
	require.Empty(t, f.publisher.Packs)
}

func Test_oauth2Domain_Refresh_Timeout(t *testing.T) {
	ctx, f := newSlowProviderFixture(t, testutil.MockContextWithUserID(nil, testutil.User1.ID))

	toolTokenRepo := repository.NewToolTokenRepository()
	require.NoError(t, toolTokenRepo.Upsert(ctx, &entity.ToolToken{
		UserID:       testutil.User1.ID,
		Tool:         entity.Excel,
		AccessToken:  "access-1",
		RefreshToken: sql.NullString{String: "refresh-1", Valid: true},
	}))

	start := time.Now()
	_, err := f.domain.Refresh(ctx, &model.RefreshTokenRequest{Tool: "excel"})
	require.ErrorIs(t, err, errorx.New(errorx.ProviderExchange, ""))
	require.Less(t, time.Since(start), time.Second)

	token, err := toolTokenRepo.Get(ctx, testutil.User1.ID, entity.Excel)
	require.NoError(t, err)
	require.Equal(t, "access-1", token.AccessToken)
	require.Empty(t, f.publisher.Packs)
}
