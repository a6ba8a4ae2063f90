package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedisStore struct {
	values map[string]string
}

func newFakeRedisStore() *fakeRedisStore {
	return &fakeRedisStore{values: map[string]string{}}
}

func (f *fakeRedisStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeRedisStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeRedisStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLockAcquireRelease(t *testing.T) {
	store := newFakeRedisStore()
	lock, err := NewRedisLock(store, "ss:lock:test", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, ok=%v err=%v", ok, err)
	}

	second, err := NewRedisLock(store, "ss:lock:test", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire to fail while lock held")
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}

	ok, err = second.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire after release, ok=%v err=%v", ok, err)
	}
}

func TestRedisLockReleaseOnlyOwn(t *testing.T) {
	store := newFakeRedisStore()
	lock, err := NewRedisLock(store, "ss:lock:test", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	if _, err := lock.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// Simulate expiry plus takeover by another worker.
	store.values["ss:lock:test"] = "someone-else"
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if store.values["ss:lock:test"] != "someone-else" {
		t.Fatal("release must not delete a lock held by another owner")
	}
}

func TestNewRedisLockValidation(t *testing.T) {
	if _, err := NewRedisLock(nil, "key", 0); err == nil {
		t.Fatal("expected error without client")
	}
	if _, err := NewRedisLock(newFakeRedisStore(), "", 0); err == nil {
		t.Fatal("expected error without key")
	}
}
