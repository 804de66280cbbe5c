package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Client {
	t.Helper()
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSQLiteCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = %s, want value", got)
	}
}

func TestSQLiteCache_GetMissing(t *testing.T) {
	cache := newTestCache(t)

	if _, err := cache.Get(context.Background(), "missing"); err == nil {
		t.Error("Get should return error for missing key")
	}
}

func TestSQLiteCache_ExpiredKeyMisses(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	// Insert a row whose expiry is already in the past.
	_, err := cache.db.ExecContext(ctx,
		"INSERT INTO search_cache (key, value, expiry) VALUES (?, ?, ?)",
		"stale", []byte("v"), time.Now().Add(-time.Minute).Unix())
	if err != nil {
		t.Fatalf("failed to seed expired row: %v", err)
	}

	if _, err := cache.Get(ctx, "stale"); err == nil {
		t.Error("Get should miss expired entries")
	}
}

func TestSQLiteCache_ZeroTTLNeverExpires(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "key", []byte("value"), 0)

	if _, err := cache.Get(ctx, "key"); err != nil {
		t.Errorf("zero TTL entries should be stored indefinitely: %v", err)
	}
}

func TestSQLiteCache_OverwriteKey(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "key", []byte("first"), time.Minute)
	_ = cache.Set(ctx, "key", []byte("second"), time.Minute)

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !bytes.Equal(got, []byte("second")) {
		t.Errorf("Get = %s, want second", got)
	}
}

func TestSQLiteCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "key", []byte("value"), time.Minute)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("Get should miss after Delete")
	}
}

func TestSQLiteCache_EmptyKeyRejected(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if _, err := cache.Get(ctx, ""); err == nil {
		t.Error("Get should reject empty keys")
	}
	if err := cache.Set(ctx, "", []byte("v"), 0); err == nil {
		t.Error("Set should reject empty keys")
	}
	if err := cache.Delete(ctx, ""); err == nil {
		t.Error("Delete should reject empty keys")
	}
}

func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatalf("NewSQLiteCache returned error: %v", err)
	}
	_ = first.Set(ctx, "key", []byte("persisted"), time.Hour)
	_ = first.Close()

	second, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer second.Close()

	got, err := second.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get after reopen returned error: %v", err)
	}
	if !bytes.Equal(got, []byte("persisted")) {
		t.Errorf("Get = %s, want persisted", got)
	}
}
