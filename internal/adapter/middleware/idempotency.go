package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sme-credit-backend/internal/infrastructure/logging"
)

const (
	// How long an in-flight call holds its key before the lock lapses.
	provisionalLockTTL = 60 * time.Second
	// Allowed client/server clock skew for Ax-Request-At.
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderReplay    = "Ax-Idempotent-Replay"
)

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware makes mutating borrower calls safe to retry. The key
// is method + route template + Ax-Owner-Id + Ax-Request-Id. A repeat with the
// same body replays the stored response; a repeat with a different body, or
// while the first call is running, is a 409. Server errors are not stored.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	log = logging.OrNop(log)
	store := entryStore{rdb: rdb}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			hdr, err := readReplayHeaders(req.Header, nowUTC())
			if err != nil {
				return errorJSON(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)
			key := idempotencyKey(req.Method, c.Path(), hdr.ownerID, hdr.requestID)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			claimed, err := store.reserve(ctx, key, entry{
				InProgress:  true,
				BodySHA256:  hash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.at.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return errorJSON(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !claimed {
				return replay(ctx, c, store, key, hash, log)
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be done once the response is out
			bg, cancelBg := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelBg()
			if rec.code >= http.StatusInternalServerError {
				if err := store.release(bg, key); err != nil {
					log.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			err = store.finish(bg, key, entry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  hash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.at.UnixMilli(),
				CreatedAt:   nowUTC(),
			}, ttl)
			if err != nil {
				log.Warn("idempotency save failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

func replay(ctx context.Context, c echo.Context, store entryStore, key, hash string, log *zap.Logger) error {
	cur, err := store.load(ctx, key)
	if err != nil {
		log.Warn("idempotency entry load failed", zap.String("key", key), zap.Error(err))
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != hash {
		return errorJSON(c, http.StatusConflict, "Ax-Request-Id reused with different body")
	}
	if !cur.replayable() {
		return errorJSON(c, http.StatusConflict, "request is already in progress")
	}
	c.Response().Header().Set(HeaderReplay, "true")
	if len(cur.Body) == 0 {
		return c.NoContent(cur.Code)
	}
	return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
}
