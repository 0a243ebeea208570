package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tripwise/internal/wizard"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/utils"
)

// SessionRepository persists wizard state per session id. Load returns nil
// state and no error for unknown or expired sessions.
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (*wizard.State, error)
	Save(ctx context.Context, sessionID string, state *wizard.State) error
}

const sessionKeyPrefix = "tripwise:session:"

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

// Load refreshes the expiry of a found session, matching the cookie re-issued
// on every request.
func (r *redisSessionRepository) Load(ctx context.Context, sessionID string) (*wizard.State, error) {
	raw, err := r.client.GetEx(ctx, sessionKeyPrefix+sessionID, r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", utils.ErrSessionStore, sessionID, err)
	}
	return decodeState(raw)
}

// Save writes the state and refreshes the session expiry.
func (r *redisSessionRepository) Save(ctx context.Context, sessionID string, state *wizard.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode state: %v", utils.ErrSessionStore, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+sessionID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save %s: %v", utils.ErrSessionStore, sessionID, err)
	}
	return nil
}

type memorySessionRepository struct {
	store mem.TTLStore
	ttl   time.Duration
}

func NewMemorySessionRepository(store mem.TTLStore, ttl time.Duration) SessionRepository {
	return &memorySessionRepository{store: store, ttl: ttl}
}

func (m *memorySessionRepository) Load(_ context.Context, sessionID string) (*wizard.State, error) {
	raw, ok := m.store.Get(sessionID)
	if !ok {
		return nil, nil
	}
	state, err := decodeState(raw)
	if err != nil {
		return nil, err
	}
	m.store.Set(sessionID, raw, m.ttl)
	return state, nil
}

func (m *memorySessionRepository) Save(_ context.Context, sessionID string, state *wizard.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode state: %v", utils.ErrSessionStore, err)
	}
	m.store.Set(sessionID, raw, m.ttl)
	return nil
}

func decodeState(raw []byte) (*wizard.State, error) {
	var state wizard.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: decode state: %v", utils.ErrSessionStore, err)
	}
	if !state.Step.Valid() {
		return nil, fmt.Errorf("%w: invalid step %d", utils.ErrSessionStore, state.Step)
	}
	return &state, nil
}
