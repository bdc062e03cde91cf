package authenticator

const microsoftScopes = "offline_access user.read Tasks.Read Project.Read.All Files.Read"

// Endpoint describes the public OAuth2 surface of an identity provider.
type Endpoint struct {
	Name      string
	EnvPrefix string
	AuthURL   string
	TokenURL  string
	Scopes    []string
	Extras    map[string]string
}

func (e Endpoint) With(extras map[string]string) Endpoint {
	merged := make(map[string]string, len(e.Extras)+len(extras))
	for k, v := range e.Extras {
		merged[k] = v
	}

	for k, v := range extras {
		merged[k] = v
	}

	e.Extras = merged
	return e
}

var (
	Microsoft = Endpoint{
		Name:      "Microsoft",
		EnvPrefix: "MICROSOFT",
		AuthURL:   "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
		TokenURL:  "https://login.microsoftonline.com/common/oauth2/v2.0/token",
		Scopes:    []string{microsoftScopes},
		Extras:    map[string]string{"response_mode": "query"},
	}

	Autodesk = Endpoint{
		Name:      "Autodesk",
		EnvPrefix: "AUTODESK",
		AuthURL:   "https://developer.api.autodesk.com/authentication/v2/authorize",
		TokenURL:  "https://developer.api.autodesk.com/authentication/v2/token",
		Scopes:    []string{"data:read", "account:read"},
	}

	Asta = Endpoint{
		Name:      "Asta",
		EnvPrefix: "ASTA",
		AuthURL:   "https://id.elecosoft.com/connect/authorize",
		TokenURL:  "https://id.elecosoft.com/connect/token",
		Scopes:    []string{"openid", "offline_access", "powerproject.read"},
	}

	Solibri = Endpoint{
		Name:      "Solibri",
		EnvPrefix: "SOLIBRI",
		AuthURL:   "https://account.solibri.com/oauth2/authorize",
		TokenURL:  "https://account.solibri.com/oauth2/token",
		Scopes:    []string{"openid", "offline_access"},
	}

	WhatsApp = Endpoint{
		Name:      "WhatsApp",
		EnvPrefix: "WHATSAPP",
		AuthURL:   "https://www.facebook.com/v18.0/dialog/oauth",
		TokenURL:  "https://graph.facebook.com/v18.0/oauth/access_token",
		Scopes:    []string{"whatsapp_business_messaging", "whatsapp_business_management"},
	}

	Bluebeam = Endpoint{
		Name:      "Bluebeam",
		EnvPrefix: "BLUEBEAM",
		AuthURL:   "https://authserver.bluebeam.com/auth/oauth/authorize",
		TokenURL:  "https://authserver.bluebeam.com/auth/token",
		Scopes:    []string{"full_user", "offline_access"},
	}
)
