package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// mockRedis implements Client in memory with error injection.
type mockRedis struct {
	mu   sync.Mutex
	data map[string]mockValue

	SetError    error
	GetError    error
	DelError    error
	ExistsError error
}

type mockValue struct {
	value     string
	expiresAt time.Time
}

func newMockRedis() *mockRedis {
	return &mockRedis{data: make(map[string]mockValue)}
}

func (m *mockRedis) live(key string) (mockValue, bool) {
	v, ok := m.data[key]
	if !ok {
		return v, false
	}
	if !v.expiresAt.IsZero() && time.Now().After(v.expiresAt) {
		return v, false
	}
	return v, true
}

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStatusCmd(ctx)
	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}

	v := mockValue{value: value.(string)}
	if expiration > 0 {
		v.expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = v
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}

	v, ok := m.live(key)
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v.value)
	return cmd
}

func (m *mockRedis) GetDel(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}

	v, ok := m.live(key)
	delete(m.data, key)
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v.value)
	return cmd
}

func (m *mockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.DelError != nil {
		cmd.SetErr(m.DelError)
		return cmd
	}

	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (m *mockRedis) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.ExistsError != nil {
		cmd.SetErr(m.ExistsError)
		return cmd
	}

	var n int64
	for _, k := range keys {
		if _, ok := m.live(k); ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (m *mockRedis) ttl(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok || v.expiresAt.IsZero() {
		return 0
	}
	return time.Until(v.expiresAt)
}
