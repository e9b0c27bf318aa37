package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// idempotencyKey scopes a request id to the caller and the route template.
func idempotencyKey(method, route, ownerID, requestID string) string {
	return "idemp:ax:" + strings.ToLower(method) + ":" + route + ":" + ownerID + ":" + requestID
}

func validRequestID(id string) bool {
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339 with
// an explicit zone. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing Ax-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
}

// replayHeaders identify one idempotent borrower call.
type replayHeaders struct {
	requestID string
	ownerID   string
	at        time.Time
}

// readReplayHeaders validates the idempotency headers against now.
func readReplayHeaders(h http.Header, now time.Time) (replayHeaders, error) {
	var out replayHeaders
	out.requestID = strings.TrimSpace(h.Get(HeaderRequestID))
	switch {
	case out.requestID == "":
		return out, errors.New("missing Ax-Request-Id")
	case !validRequestID(out.requestID):
		return out, errors.New("invalid Ax-Request-Id format")
	}

	at, err := parseRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return out, err
	}
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return out, errors.New("Ax-Request-At too skewed")
	}
	out.at = at

	out.ownerID = strings.TrimSpace(h.Get(HeaderOwnerID))
	switch {
	case out.ownerID == "":
		return out, errors.New("missing Ax-Owner-Id")
	case !reHex32.MatchString(out.ownerID):
		return out, errors.New("invalid Ax-Owner-Id")
	}
	return out, nil
}
