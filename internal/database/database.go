package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options control how a database is opened.
type Options struct {
	// PingAttempts is how many times the first ping is tried before giving up.
	PingAttempts uint
	PingDelay    time.Duration
	Logger       *slog.Logger
}

// Open opens a SQLite database at the given path and runs migrations.
func Open(dbPath string) (*sql.DB, error) {
	return OpenDriver(context.Background(), DriverSQLite, dbPath, Options{})
}

// OpenDriver opens a database for the given driver, waits for it to answer a
// ping and runs migrations. For sqlite the dsn is a file path or ":memory:";
// for postgres it is a connection URL.
func OpenDriver(ctx context.Context, driver, dsn string, opts Options) (*sql.DB, error) {
	if opts.PingAttempts == 0 {
		opts.PingAttempts = 1
	}
	if opts.PingDelay == 0 {
		opts.PingDelay = 300 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var (
		db      *sql.DB
		err     error
		dialect string
	)
	switch driver {
	case DriverSQLite, "":
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		dialect = "sqlite3"
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		dialect = "postgres"
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if strings.HasPrefix(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Delay(opts.PingDelay),
		retry.Attempts(opts.PingAttempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			opts.Logger.Warn("failed ping to database", "error", err, "attempt", attempt)
		}),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func runMigrations(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
