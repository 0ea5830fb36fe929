package sync

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/dbx"
	"github.com/dmitrijs2005/devpulse/internal/logging"
	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/dmitrijs2005/devpulse/internal/remote"
	"github.com/dmitrijs2005/devpulse/internal/store"
)

// Engine orchestrates local-first writes: every mutation is persisted
// locally first, mirrored to the remote store when connectivity allows, and
// queued for replay otherwise. Reads merge local and remote state, never
// overwriting dirty local records.
//
// Remote-class failures never propagate to callers: once the local write
// succeeded the operation is reported successful, and the unconfirmed
// mutation is queued for replay. Only storage faults and logical errors
// surface.
type Engine struct {
	db   *sql.DB
	recs store.Records
	q    store.Queue
	gw   remote.Gateway
	conn Connectivity
	log  logging.Logger

	// now is a test seam for timestamps.
	now func() time.Time

	draining atomic.Bool
}

// NewEngine wires an engine over the local database handle, the remote
// gateway (nil when no remote is configured) and the connectivity monitor.
func NewEngine(db *sql.DB, gw remote.Gateway, conn Connectivity, log logging.Logger) *Engine {
	return &Engine{
		db:   db,
		recs: store.NewSQLiteRecords(db),
		q:    store.NewSQLiteQueue(db),
		gw:   gw,
		conn: conn,
		log:  log,
		now:  time.Now,
	}
}

// Start subscribes the engine to connectivity transitions (draining the
// queue on every became-online event) and performs the startup drain if the
// monitor already reports online.
func (e *Engine) Start(ctx context.Context) {
	e.conn.Subscribe(func(online bool) {
		if !online {
			return
		}
		if err := e.DrainQueue(ctx); err != nil {
			e.log.Error(ctx, "queue drain failed", "error", err)
		}
	})

	if e.online() {
		if err := e.DrainQueue(ctx); err != nil {
			e.log.Error(ctx, "startup queue drain failed", "error", err)
		}
	}
}

func (e *Engine) online() bool {
	return e.gw != nil && e.conn.Online()
}

// PendingCount returns the number of operations waiting for replay.
func (e *Engine) PendingCount(ctx context.Context) (int, error) {
	items, err := e.q.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return len(items), nil
}

// Write persists the record locally and mirrors it to the remote store.
//
// Offline, the local write and the queue entry are committed in a single
// transaction. Online, a succeeding remote upsert stamps the record's
// syncedAt and persists the stamped version; a failing one leaves the
// record dirty and queues it for replay.
func (e *Engine) Write(ctx context.Context, collection string, env models.Envelope) (models.Envelope, error) {
	if !e.online() {
		err := dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := store.NewSQLiteRecords(tx).Put(ctx, collection, env); err != nil {
				return err
			}
			op := models.NewPendingOperation(collection, env.ID, models.ActionUpsert, env.Payload, e.now())
			return store.NewSQLiteQueue(tx).Append(ctx, op)
		})
		if err != nil {
			return models.Envelope{}, fmt.Errorf("%w: %v", common.ErrStorage, err)
		}
		return env, nil
	}

	if err := e.recs.Put(ctx, collection, env); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	table, ok := models.TableFor(collection)
	if !ok {
		return models.Envelope{}, fmt.Errorf("unknown collection: %s", collection)
	}

	if err := e.gw.Upsert(ctx, table, env); err != nil {
		e.log.Warn(ctx, "remote upsert failed, queued for replay",
			"collection", collection, "id", env.ID, "error", err)
		op := models.NewPendingOperation(collection, env.ID, models.ActionUpsert, env.Payload, e.now())
		if err := e.q.Append(ctx, op); err != nil {
			return models.Envelope{}, fmt.Errorf("%w: %v", common.ErrStorage, err)
		}
		return env, nil
	}

	stamped := env
	if err := stamped.StampSynced(e.now()); err != nil {
		return models.Envelope{}, err
	}
	if err := e.recs.Put(ctx, collection, stamped); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return stamped, nil
}

// Delete removes the record locally and mirrors the delete remotely,
// queueing it for replay when the remote cannot be reached.
func (e *Engine) Delete(ctx context.Context, collection, id string) error {
	if !e.online() {
		err := dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := store.NewSQLiteRecords(tx).Delete(ctx, collection, id); err != nil {
				return err
			}
			op := models.NewPendingOperation(collection, id, models.ActionDelete, models.NewDeletePayload(id), e.now())
			return store.NewSQLiteQueue(tx).Append(ctx, op)
		})
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrStorage, err)
		}
		return nil
	}

	if err := e.recs.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	table, ok := models.TableFor(collection)
	if !ok {
		return fmt.Errorf("unknown collection: %s", collection)
	}

	if err := e.gw.Delete(ctx, table, id); err != nil {
		e.log.Warn(ctx, "remote delete failed, queued for replay",
			"collection", collection, "id", id, "error", err)
		op := models.NewPendingOperation(collection, id, models.ActionDelete, models.NewDeletePayload(id), e.now())
		if err := e.q.Append(ctx, op); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStorage, err)
		}
	}
	return nil
}

// ReadAll returns the local record set, reconciled with a one-shot remote
// fetch when online:
//
//   - remote records unknown locally are adopted: added to the result and
//     persisted locally with a fresh syncedAt;
//   - remote records whose local counterpart is dirty are ignored (local
//     pending changes are never overwritten);
//   - remote records whose local counterpart is clean replace it, stamped
//     with a fresh syncedAt.
//
// A remote fetch failure is non-fatal: the read degrades to local-only.
func (e *Engine) ReadAll(ctx context.Context, collection string) ([]models.Envelope, error) {
	local, err := e.recs.GetAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if !e.online() {
		return local, nil
	}

	table, ok := models.TableFor(collection)
	if !ok {
		return nil, fmt.Errorf("unknown collection: %s", collection)
	}

	remoteSet, err := e.gw.SelectAll(ctx, table)
	if err != nil {
		e.log.Warn(ctx, "remote fetch failed, returning local records only",
			"collection", collection, "error", err)
		return local, nil
	}

	index := make(map[string]int, len(local))
	for i, env := range local {
		index[env.ID] = i
	}

	merged := local
	for _, rec := range remoteSet {
		i, exists := index[rec.ID]
		if exists && merged[i].Dirty() {
			// local pending changes win
			continue
		}

		adopted := rec
		if err := adopted.StampSynced(e.now()); err != nil {
			return nil, err
		}
		if err := e.recs.Put(ctx, collection, adopted); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
		}

		if exists {
			merged[i] = adopted
		} else {
			merged = append(merged, adopted)
		}
	}
	return merged, nil
}
