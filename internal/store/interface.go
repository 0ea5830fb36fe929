// Package store implements the local durable store: one SQLite table per
// record collection plus the pending-operation queue. All operations are
// transactional per call and never fail due to network conditions; errors
// here are storage faults and are surfaced to the caller.
package store

import (
	"context"

	"github.com/dmitrijs2005/devpulse/internal/models"
)

// Records describes the per-collection record operations.
type Records interface {
	// Put inserts or fully replaces a record by id.
	Put(ctx context.Context, collection string, env models.Envelope) error

	// Get returns a single record, or common.ErrNotFound.
	Get(ctx context.Context, collection, id string) (models.Envelope, error)

	// GetAll returns every record in the collection.
	GetAll(ctx context.Context, collection string) ([]models.Envelope, error)

	// Delete removes a record. Deleting an absent id is a no-op.
	Delete(ctx context.Context, collection, id string) error
}

// Queue describes the pending-operation queue. Only the sync engine
// mutates it.
type Queue interface {
	// Append inserts or replaces a pending operation by id.
	Append(ctx context.Context, op models.PendingOperation) error

	// List returns all pending operations in enqueue order, ties broken
	// by id ordering.
	List(ctx context.Context) ([]models.PendingOperation, error)

	// Remove deletes a pending operation after successful replay.
	Remove(ctx context.Context, id string) error

	// IncrementAttempts bumps the retry counter of a failed replay.
	IncrementAttempts(ctx context.Context, id string) error
}
