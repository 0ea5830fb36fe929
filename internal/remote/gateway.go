// Package remote implements the remote store gateway: a thin, stateless
// adapter performing upsert/select/delete against the Postgres backend,
// table-mapped from local collection names. All operations are network
// calls; failures are folded into the remote error sentinels and the
// gateway never retries internally.
package remote

import (
	"context"

	"github.com/dmitrijs2005/devpulse/internal/models"
)

// Filter is an equality filter applied to a record payload field.
type Filter struct {
	Key   string
	Value string
}

// Gateway describes the remote store operations used by the sync engine.
type Gateway interface {
	// Upsert inserts or fully replaces the remote row keyed by the record id
	// (last-write-wins at row granularity). Fails with common.ErrRemoteWrite.
	Upsert(ctx context.Context, table string, env models.Envelope) error

	// SelectAll returns all rows of the table, optionally narrowed by
	// equality filters. Fails with common.ErrRemoteRead.
	SelectAll(ctx context.Context, table string, filters ...Filter) ([]models.Envelope, error)

	// Delete removes the row by id. Deleting an absent id is a no-op.
	// Fails with common.ErrRemoteDelete.
	Delete(ctx context.Context, table, id string) error
}
