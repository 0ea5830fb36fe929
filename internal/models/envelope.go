package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the engine-level view of a record: the canonical JSON payload
// plus the bookkeeping fields the sync engine needs without knowing the
// record kind. The payload is the source of truth; UpdatedAt and SyncedAt
// mirror the embedded meta for querying.
type Envelope struct {
	ID        string
	Payload   []byte
	UpdatedAt time.Time
	SyncedAt  *time.Time
}

// NewEnvelope extracts the embedded Meta from a record payload.
func NewEnvelope(payload []byte) (Envelope, error) {
	var m Meta
	if err := json.Unmarshal(payload, &m); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode record meta: %w", err)
	}
	if m.ID == "" {
		return Envelope{}, fmt.Errorf("record payload has no id")
	}
	return Envelope{ID: m.ID, Payload: payload, UpdatedAt: m.UpdatedAt, SyncedAt: m.SyncedAt}, nil
}

// Dirty reports whether the enveloped record has local changes not yet
// confirmed by the remote store.
func (e *Envelope) Dirty() bool {
	return e.SyncedAt == nil || e.UpdatedAt.After(*e.SyncedAt)
}

// StampSynced sets syncedAt to t both in the envelope and inside the JSON
// payload, so the payload stays the single source of truth. All other
// payload fields are preserved as-is.
func (e *Envelope) StampSynced(t time.Time) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Payload, &fields); err != nil {
		return fmt.Errorf("failed to decode record payload: %w", err)
	}

	stamp, err := json.Marshal(t)
	if err != nil {
		return err
	}
	fields["syncedAt"] = stamp

	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to re-encode record payload: %w", err)
	}

	e.Payload = payload
	e.SyncedAt = &t
	return nil
}
