package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
)

func newStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewSessionStore(client), mr
}

func TestSessionStore_RecordAndMatch(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	uid := uuid.New()

	exp := time.Now().Add(time.Hour)
	if err := store.Record(ctx, uid, "refresh-1", exp); err != nil {
		t.Fatalf("Record: %v", err)
	}

	ok, err := store.Matches(ctx, uid, "refresh-1")
	if err != nil || !ok {
		t.Fatalf("current token should match: ok=%v err=%v", ok, err)
	}

	ok, err = store.Matches(ctx, uid, "refresh-other")
	if err != nil || ok {
		t.Fatalf("foreign token must not match: ok=%v err=%v", ok, err)
	}
}

func TestSessionStore_LastLoginWins(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	uid := uuid.New()
	exp := time.Now().Add(time.Hour)

	if err := store.Record(ctx, uid, "device-a", exp); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, uid, "device-b", exp); err != nil {
		t.Fatal(err)
	}

	if ok, _ := store.Matches(ctx, uid, "device-a"); ok {
		t.Fatal("superseded session must stop matching")
	}
	if ok, _ := store.Matches(ctx, uid, "device-b"); !ok {
		t.Fatal("latest session should match")
	}
}

func TestSessionStore_Invalidate(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	uid := uuid.New()

	if err := store.Record(ctx, uid, "refresh-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := store.Invalidate(ctx, uid); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, err := store.Current(ctx, uid); !domainErrors.IsNotFound(err) {
		t.Fatalf("want ErrNotFound after invalidate, got %v", err)
	}
	if ok, _ := store.Matches(ctx, uid, "refresh-1"); ok {
		t.Fatal("invalidated session must not match")
	}
}

func TestSessionStore_ExpiresWithToken(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	uid := uuid.New()

	if err := store.Record(ctx, uid, "refresh-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Current(ctx, uid); !domainErrors.IsNotFound(err) {
		t.Fatalf("want ErrNotFound after expiry, got %v", err)
	}
}

func TestSessionStore_InvalidateUnknownSubject(t *testing.T) {
	store, _ := newStore(t)
	if err := store.Invalidate(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Invalidate must be idempotent: %v", err)
	}
}
