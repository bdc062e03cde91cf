package authenticator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bouwconnect/backend/config"
	"github.com/bouwconnect/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, forms *[]url.Values) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		*forms = append(*forms, r.PostForm)

		if r.PostForm.Get("code") == "bad-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-" + r.PostForm.Get("grant_type"),
			"refresh_token": "refresh-token",
			"expires_in":    3600,
			"token_type":    "Bearer",
		})
	}))
}

func TestOAuth2Provider_AuthCodeURL(t *testing.T) {
	provider, err := authenticator.NewOAuth2Provider(
		context.Background(),
		"excel",
		authenticator.Microsoft.With(map[string]string{"prompt": "select_account"}),
		config.OAuth2Config{ClientID: "client-id", ClientSecret: "secret"},
		"http://localhost:4000/",
	)
	require.NoError(t, err)
	require.True(t, provider.Configured())
	require.Equal(t, "http://localhost:4000/excel/callback", provider.RedirectURI())

	u, err := url.Parse(provider.AuthCodeURL("nonce"))
	require.NoError(t, err)
	require.Equal(t, "login.microsoftonline.com", u.Host)

	q := u.Query()
	require.Equal(t, "client-id", q.Get("client_id"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "http://localhost:4000/excel/callback", q.Get("redirect_uri"))
	require.Equal(t, "nonce", q.Get("state"))
	require.Equal(t, "query", q.Get("response_mode"))
	require.Equal(t, "select_account", q.Get("prompt"))
	require.Contains(t, q.Get("scope"), "Files.Read")
}

func TestOAuth2Provider_Configured(t *testing.T) {
	for _, clientID := range []string{"", "your-microsoft-client-id", "mock-client-id"} {
		provider, err := authenticator.NewOAuth2Provider(context.Background(), "msproject",
			authenticator.Microsoft, config.OAuth2Config{ClientID: clientID}, "http://localhost:4000")
		require.NoError(t, err)
		require.False(t, provider.Configured(), clientID)
		require.Equal(t, "Microsoft", provider.Name())
	}
}

func TestOAuth2Provider_Exchange(t *testing.T) {
	var forms []url.Values
	server := newTokenServer(t, &forms)
	defer server.Close()

	provider, err := authenticator.NewOAuth2Provider(context.Background(), "revit",
		authenticator.Autodesk,
		config.OAuth2Config{ClientID: "client-id", ClientSecret: "client-secret", TokenURL: server.URL},
		"http://localhost:4000",
	)
	require.NoError(t, err)

	token, err := provider.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	require.Equal(t, "access-authorization_code", token.AccessToken)
	require.Equal(t, "refresh-token", token.RefreshToken)
	require.Equal(t, int64(3600), authenticator.ExpiresIn(token))

	require.Len(t, forms, 1)
	require.Equal(t, "client-id", forms[0].Get("client_id"))
	require.Equal(t, "client-secret", forms[0].Get("client_secret"))
	require.Equal(t, "good-code", forms[0].Get("code"))
	require.Equal(t, "http://localhost:4000/revit/callback", forms[0].Get("redirect_uri"))
	require.Equal(t, "authorization_code", forms[0].Get("grant_type"))

	_, err = provider.Exchange(context.Background(), "bad-code")
	require.Error(t, err)
}

func TestOAuth2Provider_Refresh(t *testing.T) {
	var forms []url.Values
	server := newTokenServer(t, &forms)
	defer server.Close()

	provider, err := authenticator.NewOAuth2Provider(context.Background(), "msproject",
		authenticator.Microsoft,
		config.OAuth2Config{ClientID: "client-id", ClientSecret: "client-secret", TokenURL: server.URL},
		"http://localhost:4000",
	)
	require.NoError(t, err)

	token, err := provider.Refresh(context.Background(), "old-refresh-token")
	require.NoError(t, err)
	require.Equal(t, "access-refresh_token", token.AccessToken)
	require.Equal(t, "old-refresh-token", forms[0].Get("refresh_token"))
}
