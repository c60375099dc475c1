package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockCmdable struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
	}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	default:
		cmd.SetErr(redis.ErrClosed)
		return cmd
	}
	m.ttls[key] = ttl
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	value, ok := m.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			delete(m.ttls, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func TestSetGetDelRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.CacheKey("dashboard", "summary")
	if err := client.Set(ctx, key, "payload", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := mock.ttls[key]; got != time.Minute {
		t.Fatalf("expected ttl 1m, got %v", got)
	}

	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "payload" {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err != ErrCacheMiss {
		t.Fatalf("expected cache miss after delete, got %v", err)
	}
}

func TestGetMissReturnsErrCacheMiss(t *testing.T) {
	client := &Client{store: newMockCmdable()}

	if _, err := client.Get(context.Background(), client.CacheKey("missing")); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheKeyNamespacing(t *testing.T) {
	client := &Client{}

	if got := client.CacheKey("dashboard", "summary"); got != "gbx:cache:dashboard:summary" {
		t.Fatalf("unexpected cache key %q", got)
	}
	if got := client.CacheKey("", "x"); got != "gbx:cache:x" {
		t.Fatalf("empty parts should be skipped, got %q", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}

	if err := client.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error from uninitialized Set")
	}
	if _, err := client.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error from uninitialized Get")
	}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized Ping")
	}
}
