package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Option func(*redis.Options)

func WithPassword(p string) Option { return func(o *redis.Options) { o.Password = p } }

// WithTimeouts sets dial, read and write timeouts to d.
func WithTimeouts(d time.Duration) Option {
	return func(o *redis.Options) {
		o.DialTimeout = d
		o.ReadTimeout = d
		o.WriteTimeout = d
	}
}

func OpenRedis(addr string, db int, opts ...Option) (*redis.Client, error) {
	o := &redis.Options{Addr: addr, DB: db}
	for _, fn := range opts {
		fn(o)
	}
	r := redis.NewClient(o)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
