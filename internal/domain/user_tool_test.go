package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/internal/model"
	"github.com/bouwconnect/backend/internal/repository"
	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/testutil"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUserToolDomain() (UserToolDomain, *testutil.MockPublisher) {
	publisher := &testutil.MockPublisher{}
	return NewUserToolDomain(
		repository.NewToolTokenRepository(),
		repository.NewToolLinkRepository(),
		publisher,
	), publisher
}

func Test_userToolDomain_StoreToken(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, publisher := newUserToolDomain()

	tests := []struct {
		name    string
		req     *model.StoreTokenRequest
		wantErr error
	}{
		{
			name: "happy case",
			req: &model.StoreTokenRequest{
				UserID:       testutil.User1.ID,
				ToolID:       "autocad",
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresIn:    3600,
			},
		},
		{
			name: "unknown tool",
			req: &model.StoreTokenRequest{
				UserID:      testutil.User1.ID,
				ToolID:      "sketchup",
				AccessToken: "access",
			},
			wantErr: errorx.New(errorx.UnknownTool, "Unknown tool sketchup"),
		},
		{
			name: "another user",
			req: &model.StoreTokenRequest{
				UserID:      testutil.User2.ID,
				ToolID:      "autocad",
				AccessToken: "access",
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Permission denied"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := domain.StoreToken(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.True(t, resp.Success)
		})
	}

	_, err := domain.StoreToken(testutil.MockContext(), &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "autocad",
		AccessToken: "access",
	})
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))

	require.Len(t, publisher.Packs, 1)
}

func Test_userToolDomain_StoreToken_Idempotent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, publisher := newUserToolDomain()

	req := &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "revit",
		AccessToken: "access",
		ExpiresIn:   3600,
	}

	_, err := domain.StoreToken(ctx, req)
	require.NoError(t, err)

	first, err := domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "revit"})
	require.NoError(t, err)

	_, err = domain.StoreToken(ctx, req)
	require.NoError(t, err)

	second, err := domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "revit"})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, publisher.Packs, 1)

	req.AccessToken = "access-2"
	_, err = domain.StoreToken(ctx, req)
	require.NoError(t, err)

	third, err := domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "revit"})
	require.NoError(t, err)
	require.Equal(t, "access-2", third.Token.AccessToken)
}

func Test_userToolDomain_GetToken(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, _ := newUserToolDomain()

	_, err := domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "excel"})
	require.Equal(t, errorx.New(errorx.NotFound, "Token not found"), err)

	_, err = domain.StoreToken(ctx, &model.StoreTokenRequest{
		UserID:       testutil.User1.ID,
		ToolID:       "excel",
		AccessToken:  "access",
		RefreshToken: "refresh",
	})
	require.NoError(t, err)

	resp, err := domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "excel"})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Token.UserID)
	require.Equal(t, "excel", resp.Token.ToolID)
	require.Equal(t, "access", resp.Token.AccessToken)
	require.Equal(t, "refresh", resp.Token.RefreshToken)
	require.Empty(t, resp.Token.ExpiresAt)

	_, err = domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User2.ID, ToolID: "excel"})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))
}

func Test_userToolDomain_SetTools(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, _ := newUserToolDomain()

	resp, err := domain.SetTools(ctx, &model.SetToolsRequest{
		UserID: testutil.User1.ID,
		Tools:  []string{"autocad", "revit"},
	})
	require.NoError(t, err)
	require.Equal(t, &model.SetToolsResponse{Success: true, Tools: []string{"autocad", "revit"}}, resp)

	tools, err := domain.GetTools(ctx, &model.GetToolsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"autocad", "revit"}, tools.Tools)

	resp, err = domain.SetTools(ctx, &model.SetToolsRequest{
		UserID: testutil.User1.ID,
		Tools:  []string{"excel", "revit", "excel"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"excel", "revit"}, resp.Tools)

	tools, err = domain.GetTools(ctx, &model.GetToolsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"excel", "revit"}, tools.Tools)

	_, err = domain.SetTools(ctx, &model.SetToolsRequest{
		UserID: testutil.User1.ID,
		Tools:  []string{"excel", "sketchup"},
	})
	require.ErrorIs(t, err, errorx.New(errorx.UnknownTool, ""))

	tools, err = domain.GetTools(ctx, &model.GetToolsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"excel", "revit"}, tools.Tools)

	tools, err = domain.GetTools(testutil.MockContextWithUserID(ctx, testutil.User2.ID),
		&model.GetToolsRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Empty(t, tools.Tools)
}

func Test_userToolDomain_SetTools_KeepsTokens(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, _ := newUserToolDomain()

	_, err := domain.StoreToken(ctx, &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "autocad",
		AccessToken: "access",
	})
	require.NoError(t, err)

	_, err = domain.SetTools(ctx, &model.SetToolsRequest{UserID: testutil.User1.ID, Tools: []string{}})
	require.NoError(t, err)

	_, err = domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "autocad"})
	require.NoError(t, err)
}

func Test_userToolDomain_Disconnect(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, publisher := newUserToolDomain()

	_, err := domain.SetTools(ctx, &model.SetToolsRequest{UserID: testutil.User1.ID, Tools: []string{"excel"}})
	require.NoError(t, err)

	_, err = domain.StoreToken(ctx, &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "excel",
		AccessToken: "access",
	})
	require.NoError(t, err)

	resp, err := domain.Disconnect(ctx, &model.DisconnectToolRequest{UserID: testutil.User1.ID, ToolID: "excel"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	_, err = domain.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "excel"})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	tools, err := domain.GetTools(ctx, &model.GetToolsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"excel"}, tools.Tools)

	link, err := repository.NewToolLinkRepository().Get(ctx, testutil.User1.ID, entity.Excel)
	require.NoError(t, err)
	require.Equal(t, entity.ToolLinkDisconnected, link.Status)

	require.Len(t, publisher.Packs, 2)
}

// abortingLinkRepo ends the surrounding transaction behind the domain's back
// so that its commit fails.
type abortingLinkRepo struct {
	repository.ToolLinkRepository
}

func (r abortingLinkRepo) Replace(ctx context.Context, userID string, links []entity.ToolLink) error {
	if err := r.ToolLinkRepository.Replace(ctx, userID, links); err != nil {
		return err
	}

	return xcontext.DB(ctx).Rollback().Error
}

func (r abortingLinkRepo) UpdateStatus(
	ctx context.Context, userID string, tool entity.Tool, status entity.ToolLinkStatus,
) error {
	if err := r.ToolLinkRepository.UpdateStatus(ctx, userID, tool, status); err != nil {
		return err
	}

	return xcontext.DB(ctx).Rollback().Error
}

func Test_userToolDomain_CommitFailure(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	good, _ := newUserToolDomain()
	publisher := &testutil.MockPublisher{}
	aborting := NewUserToolDomain(
		repository.NewToolTokenRepository(),
		abortingLinkRepo{repository.NewToolLinkRepository()},
		publisher,
	)

	_, err := aborting.SetTools(ctx, &model.SetToolsRequest{UserID: testutil.User1.ID, Tools: []string{"excel"}})
	require.ErrorIs(t, err, errorx.Unknown)

	tools, err := good.GetTools(ctx, &model.GetToolsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Empty(t, tools.Tools)

	_, err = good.SetTools(ctx, &model.SetToolsRequest{UserID: testutil.User1.ID, Tools: []string{"excel"}})
	require.NoError(t, err)
	_, err = good.StoreToken(ctx, &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "excel",
		AccessToken: "access",
	})
	require.NoError(t, err)

	_, err = aborting.Disconnect(ctx, &model.DisconnectToolRequest{UserID: testutil.User1.ID, ToolID: "excel"})
	require.ErrorIs(t, err, errorx.Unknown)
	require.Empty(t, publisher.Packs)

	token, err := good.GetToken(ctx, &model.GetTokenRequest{UserID: testutil.User1.ID, ToolID: "excel"})
	require.NoError(t, err)
	require.Equal(t, "access", token.Token.AccessToken)
}

func Test_userToolDomain_GetIntegrations(t *testing.T) {
	ctx := testutil.MockContextWithUserID(nil, testutil.User1.ID)
	domain, _ := newUserToolDomain()

	_, err := domain.SetTools(ctx, &model.SetToolsRequest{
		UserID: testutil.User1.ID,
		Tools:  []string{"autocad", "revit", "excel"},
	})
	require.NoError(t, err)

	_, err = domain.StoreToken(ctx, &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "revit",
		AccessToken: "access",
	})
	require.NoError(t, err)

	// A token without a link does not make a tool connected.
	_, err = domain.StoreToken(ctx, &model.StoreTokenRequest{
		UserID:      testutil.User1.ID,
		ToolID:      "asta",
		AccessToken: "access",
	})
	require.NoError(t, err)

	require.NoError(t, repository.NewToolTokenRepository().Upsert(ctx, &entity.ToolToken{
		UserID:      testutil.User1.ID,
		Tool:        entity.Excel,
		AccessToken: "expired",
		ExpiresIn:   60,
		ExpiresAt:   sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true},
	}))

	resp, err := domain.GetIntegrations(ctx, &model.GetIntegrationsRequest{})
	require.NoError(t, err)
	require.Equal(t, []model.Integration{
		{Tool: "autocad", Status: IntegrationNotConnected},
		{Tool: "revit", Status: IntegrationConnected},
		{Tool: "excel", Status: IntegrationNotConnected},
	}, resp.Integrations)
}
