package common

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bouwconnect/backend/pkg/pubsub"
	"github.com/bouwconnect/backend/pkg/xcontext"
	"github.com/segmentio/ksuid"
)

type EventType string

const (
	ToolConnectedEvent    EventType = "tool.connected"
	ToolDisconnectedEvent EventType = "tool.disconnected"
	TokenRefreshedEvent   EventType = "token.refreshed"
)

type IntegrationEvent struct {
	ID     string    `json:"id"`
	Type   EventType `json:"type"`
	UserID string    `json:"user_id"`
	Tool   string    `json:"tool"`
	At     time.Time `json:"at"`
}

// PublishIntegrationEvent notifies the rest of the platform about a change of
// a user's integrations. Failures are logged only, the change itself already
// happened.
func PublishIntegrationEvent(
	ctx context.Context, publisher pubsub.Publisher, eventType EventType, userID, tool string,
) {
	topic := xcontext.Configs(ctx).Kafka.Topic
	if publisher == nil || topic == "" {
		return
	}

	event := IntegrationEvent{
		ID:     ksuid.New().String(),
		Type:   eventType,
		UserID: userID,
		Tool:   tool,
		At:     time.Now(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal integration event: %v", err)
		return
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(userID), Msg: b}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish integration event %s: %v", eventType, err)
	}
}
