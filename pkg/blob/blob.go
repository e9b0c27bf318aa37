// Package blob is the versioned JSON codec used for structured columns
// (offer snapshot, status history, allowed terms). Every payload is written
// inside an envelope carrying the schema version so older rows stay readable.
package blob

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the schema version written by Encode.
const Version = 1

var ErrUnsupportedVersion = errors.New("blob: unsupported version")

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// Encode wraps v in a versioned envelope.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("blob: encode: %w", err)
	}
	return json.Marshal(envelope{V: Version, Data: data})
}

// Decode reads a value produced by Encode. src is what the SQL driver handed to
// Scan: []byte, string or nil. A nil or empty src leaves v untouched.
func Decode(src any, v any) error {
	var raw []byte
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return fmt.Errorf("blob: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("blob: decode envelope: %w", err)
	}
	if env.V != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.V)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("blob: decode data: %w", err)
	}
	return nil
}
