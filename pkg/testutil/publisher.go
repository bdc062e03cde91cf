package testutil

import (
	"context"
	"sync"

	"github.com/bouwconnect/backend/pkg/pubsub"
)

// MockPublisher records every published pack.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mu    sync.Mutex
	Packs []*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mu.Lock()
	m.Packs = append(m.Packs, pack)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}
