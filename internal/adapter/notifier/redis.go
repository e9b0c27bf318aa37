package notifier

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sme-credit-backend/internal/domain/application"
)

// RedisTransport publishes on the owner's channel; the websocket gateway
// relays it to whichever sessions are subscribed.
type RedisTransport struct {
	rdb *redis.Client
}

func NewRedisTransport(rdb *redis.Client) *RedisTransport {
	return &RedisTransport{rdb: rdb}
}

func (t *RedisTransport) Send(ctx context.Context, n application.StatusNotification) error {
	payload, err := encode(n)
	if err != nil {
		return err
	}
	if err := t.rdb.Publish(ctx, Channel(n.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}
