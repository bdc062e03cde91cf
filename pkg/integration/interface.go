package integration

import "context"

// Window opens the authorization popup.
type Window interface {
	Open(url string, width, height int) error
}

// Storage is the durable key-value storage of the client, for example the
// local storage of a browser.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Relay is the part of the relay API used by the client.
type Relay interface {
	StoreToken(ctx context.Context, token *TokenRecord) error
	Disconnect(ctx context.Context, userID, tool string) error
	Tools(ctx context.Context, userID string) ([]string, error)
}

// MessageSource is the channel shared by every popup and every other sender
// of messages to the client.
type MessageSource interface {
	Subscribe() (messages <-chan any, unsubscribe func())
}

type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

type TokenRecord struct {
	UserID       string `json:"userId"`
	ToolID       string `json:"toolId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Tool    string
	Level   Level
	Message string
}
