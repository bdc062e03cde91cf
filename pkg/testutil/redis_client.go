package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bouwconnect/backend/pkg/xredis"
)

// MockRedisClient is an in-memory xredis.Client. Expired keys behave as
// missing ones.
type MockRedisClient struct {
	mu      sync.Mutex
	values  map[string][]byte
	expires map[string]time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		values:  map[string][]byte{},
		expires: map[string]time.Time{},
	}
}

func (m *MockRedisClient) get(key string) ([]byte, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}

	if exp, ok := m.expires[key]; ok && !exp.After(time.Now()) {
		delete(m.values, key)
		delete(m.expires, key)
		return nil, false
	}

	return v, true
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.get(key)
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.values, key)
		delete(m.expires, key)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = b
	if ttl > 0 {
		m.expires[key] = time.Now().Add(ttl)
	} else {
		delete(m.expires, key)
	}

	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	b, ok := m.get(key)
	m.mu.Unlock()

	if !ok {
		return xredis.ErrNotFound
	}

	return json.Unmarshal(b, v)
}

func (m *MockRedisClient) GetDelObj(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	b, ok := m.get(key)
	delete(m.values, key)
	delete(m.expires, key)
	m.mu.Unlock()

	if !ok {
		return xredis.ErrNotFound
	}

	return json.Unmarshal(b, v)
}

func (m *MockRedisClient) Close() error {
	return nil
}
