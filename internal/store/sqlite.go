package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/dbx"
	"github.com/dmitrijs2005/devpulse/internal/models"
)

// SQLiteRecords implements Records using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRecords struct {
	db dbx.DBTX
}

// NewSQLiteRecords returns a new SQLiteRecords bound to the given DBTX.
func NewSQLiteRecords(db dbx.DBTX) *SQLiteRecords {
	return &SQLiteRecords{db: db}
}

// tableFor resolves a collection to its table name. Table names come from a
// fixed map, never from input, so they are safe to interpolate into SQL.
func tableFor(collection string) (string, error) {
	table, ok := models.TableFor(collection)
	if !ok {
		return "", fmt.Errorf("unknown collection: %s", collection)
	}
	return table, nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Put upserts a record by id, fully replacing the stored payload.
func (r *SQLiteRecords) Put(ctx context.Context, collection string, env models.Envelope) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	var syncedAt sql.NullString
	if env.SyncedAt != nil {
		syncedAt = sql.NullString{String: encodeTime(*env.SyncedAt), Valid: true}
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, payload, updated_at, synced_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET payload = excluded.payload,
				updated_at = excluded.updated_at,
				synced_at = excluded.synced_at
	`, table)
	_, err = r.db.ExecContext(ctx, query, env.ID, string(env.Payload), encodeTime(env.UpdatedAt), syncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

// Get returns a record by id, or common.ErrNotFound.
func (r *SQLiteRecords) Get(ctx context.Context, collection, id string) (models.Envelope, error) {
	table, err := tableFor(collection)
	if err != nil {
		return models.Envelope{}, err
	}

	query := fmt.Sprintf(`SELECT id, payload, updated_at, synced_at FROM %s WHERE id = ?`, table)
	row := r.db.QueryRowContext(ctx, query, id)

	env, err := scanEnvelope(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Envelope{}, common.ErrNotFound
	}
	if err != nil {
		return models.Envelope{}, fmt.Errorf("failed to select record: %w", err)
	}
	return env, nil
}

// GetAll lists all records in the collection.
func (r *SQLiteRecords) GetAll(ctx context.Context, collection string) ([]models.Envelope, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, payload, updated_at, synced_at FROM %s ORDER BY id`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.Envelope
	for rows.Next() {
		env, err := scanEnvelope(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, env)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a record by id. Absent ids are a no-op.
func (r *SQLiteRecords) Delete(ctx context.Context, collection, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func scanEnvelope(scan func(dest ...any) error) (models.Envelope, error) {
	var (
		env      models.Envelope
		payload  string
		updated  string
		syncedAt sql.NullString
	)
	if err := scan(&env.ID, &payload, &updated, &syncedAt); err != nil {
		return models.Envelope{}, err
	}

	env.Payload = []byte(payload)

	t, err := decodeTime(updated)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	env.UpdatedAt = t

	if syncedAt.Valid {
		t, err := decodeTime(syncedAt.String)
		if err != nil {
			return models.Envelope{}, fmt.Errorf("failed to parse synced_at: %w", err)
		}
		env.SyncedAt = &t
	}
	return env, nil
}
