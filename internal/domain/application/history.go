package application

import (
	"database/sql/driver"
	"time"

	"sme-credit-backend/pkg/blob"
)

// StatusEntry is one immutable line of the status ledger.
type StatusEntry struct {
	Status    Status    `json:"status"`
	At        time.Time `json:"timestamp"`
	ChangedBy string    `json:"changed_by"`
	Reason    string    `json:"reason"`
	// Internal marks a reason taken from internal notes.
	Internal  bool      `json:"internal,omitempty"`
}

// StatusHistory is append-only. Append never shares the backing array with
// the receiver, so a slice handed out earlier cannot observe later entries.
type StatusHistory []StatusEntry

func (h StatusHistory) Append(e StatusEntry) StatusHistory {
	out := make(StatusHistory, len(h), len(h)+1)
	copy(out, h)
	return append(out, e)
}

// Last returns the most recent entry.
func (h StatusHistory) Last() (StatusEntry, bool) {
	if len(h) == 0 {
		return StatusEntry{}, false
	}
	return h[len(h)-1], true
}

// ForBorrower is a copy safe to show the applicant: reasons that came from
// internal notes are replaced by the generic one.
func (h StatusHistory) ForBorrower() StatusHistory {
	out := make(StatusHistory, len(h))
	for i, e := range h {
		if e.Internal {
			e.Reason = defaultReason
			e.Internal = false
		}
		out[i] = e
	}
	return out
}

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		h = StatusHistory{}
	}
	b, err := blob.Encode([]StatusEntry(h))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *StatusHistory) Scan(src any) error {
	var out []StatusEntry
	if err := blob.Decode(src, &out); err != nil {
		return err
	}
	*h = out
	return nil
}
