package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// StoreKey is the Redis key holding the settings document
const StoreKey = "orrery:settings"

// Store persists settings across restarts
type Store interface {
	// Load returns ok=false when nothing has been saved yet
	Load(ctx context.Context) (s Settings, ok bool, err error)
	Save(ctx context.Context, s Settings) error
}

// MemoryStore keeps settings for the lifetime of the process only
type MemoryStore struct {
	mu    sync.Mutex
	saved *Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saved == nil {
		return Settings{}, false, nil
	}
	return *m.saved, true, nil
}

func (m *MemoryStore) Save(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = &s
	return nil
}

// RedisStore keeps settings as a JSON document under StoreKey
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Load(ctx context.Context) (Settings, bool, error) {
	raw, err := r.rdb.Get(ctx, StoreKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, false, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, true, nil
}

func (r *RedisStore) Save(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.rdb.Set(ctx, StoreKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
