package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/dbx"
	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/dmitrijs2005/devpulse/internal/store"
	"github.com/sethvargo/go-retry"
)

// DrainQueue replays the pending-operation queue against the remote store in
// enqueue order. Successfully replayed items are removed (upserts also stamp
// the local record's syncedAt, atomically with the dequeue); failed items
// stay queued with their attempt counter bumped and the drain moves on.
//
// Concurrent calls are collapsed: connectivity flapping may trigger many
// drains, only one runs at a time.
func (e *Engine) DrainQueue(ctx context.Context) error {
	if e.gw == nil {
		return nil
	}
	if !e.draining.CompareAndSwap(false, true) {
		return nil
	}
	defer e.draining.Store(false)

	items, err := e.q.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if len(items) == 0 {
		return nil
	}

	e.log.Info(ctx, "processing sync queue", "items", len(items))

	for _, item := range items {
		table, ok := models.TableFor(item.Collection)
		if !ok {
			e.log.Error(ctx, "skipping queue item", "id", item.ID,
				"collection", item.Collection, "error", common.ErrQueueMapping)
			continue
		}

		if err := e.replay(ctx, table, item); err != nil {
			e.log.Warn(ctx, "replay failed, keeping queued",
				"id", item.ID, "attempts", item.Attempts+1, "error", err)
			if err := e.q.IncrementAttempts(ctx, item.ID); err != nil {
				return fmt.Errorf("%w: %v", common.ErrStorage, err)
			}
			continue
		}

		if err := e.dequeue(ctx, item); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStorage, err)
		}
	}
	return nil
}

// replay performs a single queued operation against the gateway, riding out
// short blips with a bounded fibonacci backoff. Malformed items fail
// without retrying.
func (e *Engine) replay(ctx context.Context, table string, op models.PendingOperation) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(100*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		switch op.Action {
		case models.ActionDelete:
			id, err := op.RecordID()
			if err != nil {
				return err
			}
			if err := e.gw.Delete(ctx, table, id); err != nil {
				return retry.RetryableError(err)
			}
			return nil

		case models.ActionUpsert:
			env, err := models.NewEnvelope(op.Payload)
			if err != nil {
				return err
			}
			if err := e.gw.Upsert(ctx, table, env); err != nil {
				return retry.RetryableError(err)
			}
			return nil

		default:
			return fmt.Errorf("unknown queue action: %s", op.Action)
		}
	})
}

// dequeue removes a replayed item and, for upserts, stamps the local
// record's syncedAt in the same transaction. The stamp is skipped when the
// local record has been mutated since the operation was enqueued (it is
// dirtier than what was pushed) or no longer exists.
func (e *Engine) dequeue(ctx context.Context, op models.PendingOperation) error {
	return dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		queue := store.NewSQLiteQueue(tx)
		if err := queue.Remove(ctx, op.ID); err != nil {
			return err
		}

		if op.Action != models.ActionUpsert {
			return nil
		}

		pushed, err := models.NewEnvelope(op.Payload)
		if err != nil {
			return err
		}

		recs := store.NewSQLiteRecords(tx)
		local, err := recs.Get(ctx, op.Collection, pushed.ID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}
		if local.UpdatedAt.After(pushed.UpdatedAt) {
			return nil
		}

		if err := local.StampSynced(e.now()); err != nil {
			return err
		}
		return recs.Put(ctx, op.Collection, local)
	})
}
