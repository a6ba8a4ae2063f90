package redis

import (
	"testing"
	"time"

	"github.com/smartsort/inventory-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address set")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:      "localhost:6379",
		Password:     "secret",
		DB:           2,
		PoolSize:     5,
		MinIdleConns: 1,
		DialTimeout:  time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 || opts.PoolSize != 5 || opts.DialTimeout != time.Second {
		t.Fatalf("config not applied: %+v", opts)
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@redis.internal:6380/1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "redis.internal:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 1 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestLockKeyNamespacing(t *testing.T) {
	c := &Client{}
	if got := c.LockKey("reorder-worker"); got != "ss:lock:reorder-worker" {
		t.Fatalf("unexpected lock key %q", got)
	}
}
