package middleware

import (
	"context"
	"strings"
	"testing"
	"time"
)

func testKey() string {
	return idempotencyKey("POST", "/api/companies", strings.Repeat("b", 32), strings.Repeat("a", 32))
}

func Test_entryStore_ReserveOnce(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	s := entryStore{rdb: rdb}
	ctx := context.Background()
	e := entry{InProgress: true, BodySHA256: bodyHash([]byte(`{}`)), RequestID: strings.Repeat("a", 32), CreatedAt: nowUTC()}

	ok, err := s.reserve(ctx, testKey(), e)
	if err != nil || !ok {
		t.Fatalf("first reserve: ok=%v err=%v", ok, err)
	}
	if ttl := mr.TTL(testKey()); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional ttl = %v", ttl)
	}
	ok, err = s.reserve(ctx, testKey(), e)
	if err != nil || ok {
		t.Fatalf("second reserve: ok=%v err=%v", ok, err)
	}

	got, err := s.load(ctx, testKey())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.InProgress || got.replayable() || got.BodySHA256 != e.BodySHA256 {
		t.Fatalf("loaded %+v", got)
	}
}

func Test_entryStore_FinishAndRelease(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	s := entryStore{rdb: rdb}
	ctx := context.Background()

	final := entry{Code: 201, Body: []byte(`{"ok":true}`), RequestID: strings.Repeat("a", 32)}
	if err := s.finish(ctx, testKey(), final, 5*time.Second); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if ttl := mr.TTL(testKey()); ttl <= 0 || ttl > 5*time.Second {
		t.Fatalf("final ttl = %v", ttl)
	}
	got, err := s.load(ctx, testKey())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.replayable() || string(got.Body) != `{"ok":true}` {
		t.Fatalf("loaded %+v", got)
	}

	mr.FastForward(6 * time.Second)
	if mr.Exists(testKey()) {
		t.Fatal("final entry should expire")
	}

	if err := s.finish(ctx, testKey(), final, time.Minute); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := s.release(ctx, testKey()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists(testKey()) {
		t.Fatal("released key still present")
	}
}

func Test_entryStore_LoadCorrupt(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	if err := mr.Set(testKey(), "{broken"); err != nil {
		t.Fatal(err)
	}
	if _, err := (entryStore{rdb: rdb}).load(context.Background(), testKey()); err == nil {
		t.Fatal("expected decode error")
	}
}
