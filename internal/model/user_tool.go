package model

type ToolToken struct {
	UserID       string `json:"userId"`
	ToolID       string `json:"toolId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
	ExpiresAt    string `json:"expiresAt,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type StoreTokenRequest struct {
	UserID       string `json:"userId" validate:"required"`
	ToolID       string `json:"toolId" validate:"required"`
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn" validate:"gte=0"`
}

type StoreTokenResponse struct {
	Success bool `json:"success"`
}

type GetTokenRequest struct {
	UserID string `uri:"userId" validate:"required"`
	ToolID string `uri:"toolId" validate:"required"`
}

type GetTokenResponse struct {
	Token ToolToken `json:"token"`
}

type GetToolsRequest struct {
	UserID string `form:"userId" validate:"required"`
}

type GetToolsResponse struct {
	Tools []string `json:"tools"`
}

type SetToolsRequest struct {
	UserID string   `json:"userId" validate:"required"`
	Tools  []string `json:"tools" validate:"required"`
}

type SetToolsResponse struct {
	Success bool     `json:"success"`
	Tools   []string `json:"tools"`
}

type DisconnectToolRequest struct {
	UserID string `json:"userId" validate:"required"`
	ToolID string `json:"toolId" validate:"required"`
}

type DisconnectToolResponse struct {
	Success bool `json:"success"`
}

type Integration struct {
	Tool   string `json:"tool"`
	Status string `json:"status"`
}

type GetIntegrationsRequest struct{}

type GetIntegrationsResponse struct {
	Integrations []Integration `json:"integrations"`
}
