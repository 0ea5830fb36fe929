package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/dbx"
	"github.com/dmitrijs2005/devpulse/internal/models"
)

// allowedTables guards SQL interpolation: only tables from the fixed
// collection mapping are addressable.
var allowedTables = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, c := range models.Collections() {
		table, _ := models.TableFor(c)
		m[table] = struct{}{}
	}
	return m
}()

// PostgresGateway implements Gateway over a dbx.DBTX (*sql.DB or *sql.Tx)
// opened with the pgx stdlib driver. It holds no state between calls.
type PostgresGateway struct {
	db dbx.DBTX
}

// NewPostgresGateway returns a gateway bound to the given DBTX.
func NewPostgresGateway(db dbx.DBTX) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func checkTable(table string) error {
	if _, ok := allowedTables[table]; !ok {
		return fmt.Errorf("unknown table: %s", table)
	}
	return nil
}

// Upsert fully replaces the remote row on id conflict.
func (g *PostgresGateway) Upsert(ctx context.Context, table string, env models.Envelope) error {
	if err := checkTable(table); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteWrite, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, table)
	if _, err := g.db.ExecContext(ctx, query, env.ID, string(env.Payload), env.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteWrite, err)
	}
	return nil
}

// SelectAll returns every row of the table, optionally filtered by payload
// field equality.
func (g *PostgresGateway) SelectAll(ctx context.Context, table string, filters ...Filter) ([]models.Envelope, error) {
	if err := checkTable(table); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteRead, err)
	}

	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, `SELECT id, payload FROM %s`, table)
	for i, f := range filters {
		if i == 0 {
			sb.WriteString(` WHERE `)
		} else {
			sb.WriteString(` AND `)
		}
		fmt.Fprintf(&sb, `payload->>$%d = $%d`, len(args)+1, len(args)+2)
		args = append(args, f.Key, f.Value)
	}
	sb.WriteString(` ORDER BY id`)

	rows, err := g.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteRead, err)
	}
	defer rows.Close()

	var result []models.Envelope
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrRemoteRead, err)
		}
		env, err := models.NewEnvelope([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrRemoteRead, err)
		}
		result = append(result, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteRead, err)
	}
	return result, nil
}

// Delete removes the row by id. Zero rows affected is a success: a replayed
// delete of an already-deleted id must be a no-op.
func (g *PostgresGateway) Delete(ctx context.Context, table, id string) error {
	if err := checkTable(table); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteDelete, err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteDelete, err)
	}
	return nil
}
