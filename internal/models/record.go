// Package models defines the DevPulse record kinds and the sync bookkeeping
// shared by all of them. Records travel between the local store and the
// remote backend as canonical JSON payloads; Meta carries the identity and
// timestamps every payload embeds.
package models

import "time"

// Collection names, as used by the local store and the pending queue.
const (
	CollectionCodingSessions = "coding-sessions"
	CollectionLearningItems  = "learning-items"
	CollectionFocusSessions  = "focus-sessions"
)

// collectionTables is the fixed collection→table mapping shared by the local
// schema and the remote backend.
var collectionTables = map[string]string{
	CollectionCodingSessions: "coding_sessions",
	CollectionLearningItems:  "learning_items",
	CollectionFocusSessions:  "focus_sessions",
}

// TableFor resolves a collection name to its table name. The second return
// value is false for unknown collections.
func TableFor(collection string) (string, bool) {
	table, ok := collectionTables[collection]
	return table, ok
}

// Collections returns all known collection names.
func Collections() []string {
	return []string{CollectionCodingSessions, CollectionLearningItems, CollectionFocusSessions}
}

// Meta carries identity and sync bookkeeping embedded in every record kind.
//
// A record is "dirty" when its latest local mutation has not been confirmed
// remotely: SyncedAt is absent, or UpdatedAt is newer than SyncedAt. Any
// local mutation must bump UpdatedAt and must not touch SyncedAt; only a
// confirmed remote write stamps SyncedAt.
type Meta struct {
	// ID is a globally unique identifier, assigned client-side at creation
	// and immutable afterwards.
	ID string `json:"id"`

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the last local modification time in UTC. Always ≥ CreatedAt.
	UpdatedAt time.Time `json:"updatedAt"`

	// SyncedAt, when present, indicates the record's state as of that time
	// was durably replicated to the remote store.
	SyncedAt *time.Time `json:"syncedAt,omitempty"`
}

// Dirty reports whether the record has local changes not yet confirmed
// by the remote store.
func (m *Meta) Dirty() bool {
	return m.SyncedAt == nil || m.UpdatedAt.After(*m.SyncedAt)
}
