package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sme-credit-backend/pkg/blob"
)

// entry is what the idempotency store keeps per key. While InProgress the
// original call is still running; afterwards Code and Body are replayed.
type entry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e entry) replayable() bool { return !e.InProgress && e.Code != 0 }

type entryStore struct{ rdb *redis.Client }

// reserve claims key for an in-flight call. false means the key exists.
func (s entryStore) reserve(ctx context.Context, key string, e entry) (bool, error) {
	payload, err := blob.Encode(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func (s entryStore) load(ctx context.Context, key string) (entry, error) {
	var e entry
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	return e, blob.Decode(raw, &e)
}

// finish stores the final response for replay during ttl.
func (s entryStore) finish(ctx context.Context, key string, e entry, ttl time.Duration) error {
	payload, err := blob.Encode(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

// release drops the key so the client may retry with the same request id.
func (s entryStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
