package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bouwconnect/backend/internal/entity"
	"github.com/bouwconnect/backend/pkg/crypto"
	"github.com/bouwconnect/backend/pkg/xredis"
	"github.com/puzpuzpuz/xsync"
)

// ErrStateNotFound is returned when a nonce is unknown, already consumed, or
// expired.
var ErrStateNotFound = errors.New("oauth2 state not found")

type OAuth2StateRepository interface {
	Save(ctx context.Context, state *entity.OAuth2State, ttl time.Duration) error

	// Consume returns the state of the nonce and invalidates it, so a nonce can
	// be consumed only once.
	Consume(ctx context.Context, nonce string) (*entity.OAuth2State, error)
}

type redisOAuth2StateRepository struct {
	redisClient xredis.Client
}

func NewRedisOAuth2StateRepository(redisClient xredis.Client) *redisOAuth2StateRepository {
	return &redisOAuth2StateRepository{redisClient: redisClient}
}

// key stores the hash of the nonce, the nonce itself never reaches redis.
func (r *redisOAuth2StateRepository) key(nonce string) string {
	return fmt.Sprintf("oauth2_state:%s", crypto.SHA256([]byte(nonce)))
}

func (r *redisOAuth2StateRepository) Save(
	ctx context.Context, state *entity.OAuth2State, ttl time.Duration,
) error {
	return r.redisClient.SetObj(ctx, r.key(state.Nonce), state, ttl)
}

func (r *redisOAuth2StateRepository) Consume(ctx context.Context, nonce string) (*entity.OAuth2State, error) {
	var state entity.OAuth2State
	if err := r.redisClient.GetDelObj(ctx, r.key(nonce), &state); err != nil {
		if errors.Is(err, xredis.ErrNotFound) {
			return nil, ErrStateNotFound
		}

		return nil, err
	}

	return &state, nil
}

type memoryState struct {
	state    entity.OAuth2State
	expireAt time.Time
}

type memoryOAuth2StateRepository struct {
	states *xsync.MapOf[string, memoryState]
	now    func() time.Time
}

func NewMemoryOAuth2StateRepository() *memoryOAuth2StateRepository {
	return &memoryOAuth2StateRepository{
		states: xsync.NewMapOf[memoryState](),
		now:    time.Now,
	}
}

func (r *memoryOAuth2StateRepository) Save(
	ctx context.Context, state *entity.OAuth2State, ttl time.Duration,
) error {
	now := r.now()
	r.states.Range(func(nonce string, s memoryState) bool {
		if !s.expireAt.After(now) {
			r.states.Delete(nonce)
		}
		return true
	})

	r.states.Store(state.Nonce, memoryState{state: *state, expireAt: now.Add(ttl)})
	return nil
}

func (r *memoryOAuth2StateRepository) Consume(ctx context.Context, nonce string) (*entity.OAuth2State, error) {
	s, ok := r.states.LoadAndDelete(nonce)
	if !ok || !s.expireAt.After(r.now()) {
		return nil, ErrStateNotFound
	}

	return &s.state, nil
}
