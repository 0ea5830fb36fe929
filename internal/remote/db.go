package remote

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/dmitrijs2005/devpulse/internal/remote/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// Open opens a database/sql handle to the remote backend via the pgx driver.
// The handle is not pinged: the backend may well be unreachable at startup,
// and that is a normal operating mode.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote store: %w", err)
	}
	return db, nil
}

// AddrFromDSN extracts the host:port the reachability prober should dial.
func AddrFromDSN(dsn string) (string, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse remote DSN: %w", err)
	}
	return net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port))), nil
}

// Provision applies the remote table migrations, preparing a fresh backend.
// Run explicitly (devpulse -provision), never on normal startup.
func Provision(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}
