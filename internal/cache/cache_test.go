package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheFromClient(client), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "capacity:week:7:2026-01-05", `[{"user_id":7}]`, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, "capacity:week:7:2026-01-05")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != `[{"user_id":7}]` {
		t.Errorf("Get() = %q", got)
	}
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	c, _ := setupTestCache(t)

	got, err := c.Get(context.Background(), "no-such-key")
	if err != nil {
		t.Fatalf("Get() error = %v, miss must not be an error", err)
	}
	if got != "" {
		t.Errorf("Get() = %q, want empty string on miss", got)
	}
}

func TestRedisCache_Del(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k1", "v1", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Del(ctx, "k1", "never-existed"); err != nil {
		t.Fatalf("Del() error = %v", err)
	}

	got, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() after Del = %q, want empty", got)
	}
}

func TestRedisCache_Expiration(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k1", "v1", 30*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(31 * time.Second)

	got, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() after TTL = %q, want empty", got)
	}
}
