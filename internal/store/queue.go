package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/dbx"
	"github.com/dmitrijs2005/devpulse/internal/models"
)

// SQLiteQueue implements Queue using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteQueue struct {
	db dbx.DBTX
}

// NewSQLiteQueue returns a new SQLiteQueue bound to the given DBTX.
func NewSQLiteQueue(db dbx.DBTX) *SQLiteQueue {
	return &SQLiteQueue{db: db}
}

// Append upserts a pending operation by id. Two writes to the same record in
// the same millisecond collide on id; last one wins, which matches the
// full-record upsert semantics of replay.
//
// enqueued_at is persisted as integer epoch milliseconds so that the SQL
// ordering in List is chronological. A textual timestamp would not be: the
// RFC3339Nano form trims trailing fractional zeros, making lexical and
// chronological order diverge.
func (q *SQLiteQueue) Append(ctx context.Context, op models.PendingOperation) error {
	query := `INSERT INTO sync_queue (id, collection, action, payload, enqueued_at, attempts)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET collection = excluded.collection,
				action = excluded.action,
				payload = excluded.payload,
				enqueued_at = excluded.enqueued_at
	`
	_, err := q.db.ExecContext(ctx, query,
		op.ID, op.Collection, op.Action, string(op.Payload), op.EnqueuedAt.UnixMilli(), op.Attempts)
	if err != nil {
		return fmt.Errorf("failed to enqueue operation: %w", err)
	}
	return nil
}

// List returns all pending operations, oldest first, ties broken by id.
func (q *SQLiteQueue) List(ctx context.Context) ([]models.PendingOperation, error) {
	query := `SELECT id, collection, action, payload, enqueued_at, attempts
			FROM sync_queue ORDER BY enqueued_at, id`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select queue: %w", err)
	}
	defer rows.Close()

	var result []models.PendingOperation
	for rows.Next() {
		var (
			op       models.PendingOperation
			payload  string
			enqueued int64
		)
		if err := rows.Scan(&op.ID, &op.Collection, &op.Action, &payload, &enqueued, &op.Attempts); err != nil {
			return nil, err
		}
		op.Payload = []byte(payload)
		op.EnqueuedAt = time.UnixMilli(enqueued).UTC()
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes a pending operation by id.
func (q *SQLiteQueue) Remove(ctx context.Context, id string) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove queue item: %w", err)
	}
	return nil
}

// IncrementAttempts bumps the retry counter of a queue item.
func (q *SQLiteQueue) IncrementAttempts(ctx context.Context, id string) error {
	if _, err := q.db.ExecContext(ctx, `UPDATE sync_queue SET attempts = attempts + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to update queue attempts: %w", err)
	}
	return nil
}
