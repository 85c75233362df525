package probe

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres startup-phase SQLSTATE codes. The server answers the wire
// protocol with these while it is still coming up, so they are transient.
const (
	pgCannotConnectNow   = "57P03"
	pgAdminShutdown      = "57P01"
	pgCrashShutdown      = "57P02"
	pgTooManyConnections = "53300"
)

// Postgres probes a Postgres backend by opening a fresh connection and
// pinging it. A new connection per attempt avoids caching a dead socket
// across retries.
type Postgres struct {
	name string
	dsn  string
}

// NewPostgres returns a probe for the database known to the gate as name.
func NewPostgres(name, dsn string) *Postgres {
	return &Postgres{name: name, dsn: dsn}
}

func (p *Postgres) Name() string { return p.name }

// Check connects and pings. Failures are classified transient only when they
// look like the database still starting up; anything else (bad credentials,
// malformed DSN) surfaces as-is.
func (p *Postgres) Check(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, p.dsn)
	if err != nil {
		return classifyPostgres(err)
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return classifyPostgres(err)
	}
	return nil
}

func classifyPostgres(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCannotConnectNow, pgAdminShutdown, pgCrashShutdown, pgTooManyConnections:
			return &OperationalError{Cause: err}
		}
		// Server responded with a real error (auth failure, missing
		// database). Retrying will not fix it.
		return err
	}

	var netErr net.Error
	var connectErr *pgconn.ConnectError
	if errors.As(err, &netErr) || errors.As(err, &connectErr) || errors.Is(err, syscall.ECONNREFUSED) {
		return &DialError{Cause: err}
	}
	return err
}
