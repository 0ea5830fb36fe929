package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Queue actions. Create and update collapse to a single idempotent upsert
// since the stores always write full records.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// PendingOperation is a queued intent to replicate a local mutation to the
// remote store once connectivity allows. It is created only when a mutation
// cannot be confirmed remotely at mutation time, and removed exactly once,
// right after a successful replay.
type PendingOperation struct {
	// ID is `{collection}_{recordId}_{enqueueEpochMillis}`, which keeps
	// lexical grouping per record and makes ties deterministic.
	ID         string
	Collection string
	Action     string
	// Payload is the full record JSON for upserts, or `{"id":...}` for deletes.
	Payload    []byte
	EnqueuedAt time.Time
	Attempts   int
}

// NewPendingOperation builds a queue entry for the given mutation.
func NewPendingOperation(collection, recordID, action string, payload []byte, now time.Time) PendingOperation {
	return PendingOperation{
		ID:         fmt.Sprintf("%s_%s_%d", collection, recordID, now.UnixMilli()),
		Collection: collection,
		Action:     action,
		Payload:    payload,
		EnqueuedAt: now,
	}
}

// DeletePayload is the payload shape queued for delete operations.
type DeletePayload struct {
	ID string `json:"id"`
}

// NewDeletePayload encodes the id-only payload for a queued delete.
func NewDeletePayload(id string) []byte {
	b, _ := json.Marshal(DeletePayload{ID: id})
	return b
}

// RecordID extracts the record identifier from the operation payload.
func (op *PendingOperation) RecordID() (string, error) {
	var p DeletePayload
	if err := json.Unmarshal(op.Payload, &p); err != nil {
		return "", fmt.Errorf("failed to decode operation payload: %w", err)
	}
	if p.ID == "" {
		return "", fmt.Errorf("operation payload has no id")
	}
	return p.ID, nil
}
