package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(NewRedisStorage(rdb, "", ttl)), mr
}

func TestRedisStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStoreTest(t, 0)

	if err := store.Persist(ctx, Session{UserID: 5, Role: "admin", AccessToken: "acc"}); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if !mr.Exists("lc:session") {
		t.Fatal("expected session under the default key")
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Role != RoleAdmin || got.AccessToken != "acc" {
		t.Fatalf("loaded session = %+v", got)
	}
}

func TestRedisStorageMissingKey(t *testing.T) {
	store, _ := newRedisStoreTest(t, 0)
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRedisStorageTTLExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStoreTest(t, time.Minute)

	if err := store.Persist(ctx, Session{UserID: 5, AccessToken: "acc"}); err != nil {
		t.Fatalf("persist: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected expired slot to read as absent, got %v", err)
	}
}

func TestRedisStorageClear(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStoreTest(t, 0)

	if err := store.Persist(ctx, Session{UserID: 5}); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists("lc:session") {
		t.Fatal("key survived clear")
	}
}
