// Package configcache keeps the risk parameter snapshot in redis.
package configcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sme-credit-backend/internal/domain/risk"
	"sme-credit-backend/internal/infrastructure/logging"
	"sme-credit-backend/pkg/blob"
)

const Key = "credit:config:parameters"

var _ risk.ConfigProvider = (*Provider)(nil)

// Provider reads through redis to source. Source errors are never cached;
// redis errors fall back to source.
type Provider struct {
	rdb    *redis.Client
	source risk.ConfigProvider
	ttl    time.Duration
	log    *zap.Logger
}

func New(rdb *redis.Client, source risk.ConfigProvider, ttl time.Duration, log *zap.Logger) *Provider {
	return &Provider{rdb: rdb, source: source, ttl: ttl, log: logging.OrNop(log)}
}

func (p *Provider) Parameters(ctx context.Context) (risk.Parameters, error) {
	if p.ttl <= 0 || p.rdb == nil {
		return p.source.Parameters(ctx)
	}

	raw, err := p.rdb.Get(ctx, Key).Bytes()
	switch {
	case err == nil:
		var params risk.Parameters
		derr := blob.Decode(raw, &params)
		if derr == nil {
			return params, nil
		}
		p.log.Warn("config cache entry unreadable", zap.Error(derr))
	case !errors.Is(err, redis.Nil):
		p.log.Warn("config cache read failed", zap.Error(err))
	}

	params, err := p.source.Parameters(ctx)
	if err != nil {
		return risk.Parameters{}, err
	}
	if payload, eerr := blob.Encode(params); eerr == nil {
		if serr := p.rdb.Set(ctx, Key, payload, p.ttl).Err(); serr != nil {
			p.log.Warn("config cache write failed", zap.Error(serr))
		}
	}
	return params, nil
}

// Invalidate drops the cached snapshot so the next read hits source.
func (p *Provider) Invalidate(ctx context.Context) error {
	if p.rdb == nil {
		return nil
	}
	return p.rdb.Del(ctx, Key).Err()
}
