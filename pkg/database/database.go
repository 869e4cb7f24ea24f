package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/consts"
	"github.com/pseudomuto/colsweep/pkg/dialect"
	"github.com/pseudomuto/colsweep/pkg/errs"

	_ "modernc.org/sqlite"
)

const mysqlTLSKey = "colsweep"

type (
	// Options describes how to reach the target database.
	Options struct {
		// Driver is one of mysql, postgres (or pgx), sqlite, clickhouse. Any other
		// name is passed to sql.Open as is.
		Driver string

		// DSN is the driver-specific connection string.
		DSN string

		// Dialect forces a profile by tag instead of detecting it.
		Dialect string

		TLS TLSOptions

		// MaxOpenConns caps the pool. Defaults to consts.DefaultMaxOpenConns.
		MaxOpenConns int

		// ConnectTimeout bounds the ping retries. Defaults to
		// consts.DefaultConnectTimeout.
		ConnectTimeout time.Duration

		Logger *slog.Logger
	}

	// DB is a validated connection pool together with its dialect profile.
	DB struct {
		*sql.DB

		Driver  string
		Profile dialect.Profile
	}

	// Session is the subset of *sql.DB, *sql.Conn and *sql.Tx used to read
	// metadata and issue DDL.
	Session interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	}
)

// Open connects to the database described by opts, pings it with exponential
// backoff until ConnectTimeout elapses and resolves its dialect profile.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.Driver == "" {
		return nil, errs.Configuration("database driver is required")
	}

	if opts.DSN == "" {
		return nil, errs.Configuration("database dsn is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var tlsCfg *tls.Config
	if opts.TLS.Enabled() {
		cfg, err := GetTLSConfig(opts.TLS)
		if err != nil {
			return nil, errs.Connectivity(err)
		}
		tlsCfg = cfg
	}

	driver := normalizeDriver(opts.Driver)
	db, err := openDriver(driver, opts.DSN, tlsCfg)
	if err != nil {
		return nil, errs.Connectivity(err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = consts.DefaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpen)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = consts.DefaultConnectTimeout
	}

	if err := ping(ctx, db, timeout, logger); err != nil {
		_ = db.Close()
		return nil, errs.Connectivity(err)
	}

	profile, ok := dialect.ByTag(opts.Dialect)
	if !ok {
		profile = dialect.Detect(ctx, db, driver)
	}

	logger.Debug("Connected to database", "driver", driver, "dialect", profile.String())

	return &DB{DB: db, Driver: driver, Profile: profile}, nil
}

func normalizeDriver(driver string) string {
	switch d := strings.ToLower(driver); d {
	case "postgres", "postgresql", "pgx":
		return "pgx"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return d
	}
}

func openDriver(driver, dsn string, tlsCfg *tls.Config) (*sql.DB, error) {
	switch driver {
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "invalid mysql dsn")
		}

		if tlsCfg != nil {
			if err := mysql.RegisterTLSConfig(mysqlTLSKey, tlsCfg); err != nil {
				return nil, errors.Wrap(err, "failed to register mysql tls config")
			}
			cfg.TLSConfig = mysqlTLSKey
		}

		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create mysql connector")
		}
		return sql.OpenDB(connector), nil

	case "pgx":
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "invalid postgres dsn")
		}

		if tlsCfg != nil {
			cfg.TLSConfig = tlsCfg
		}
		return stdlib.OpenDB(*cfg), nil

	case "clickhouse":
		opts, err := clickhouseOptions(dsn)
		if err != nil {
			return nil, err
		}

		if tlsCfg != nil {
			opts.TLS = tlsCfg
		}
		return clickhouse.OpenDB(opts), nil

	case "sqlite":
		db, err := sql.Open("sqlite", sqliteDSN(dsn))
		return db, errors.Wrap(err, "failed to open sqlite database")

	default:
		db, err := sql.Open(driver, dsn)
		return db, errors.Wrapf(err, "failed to open %s database", driver)
	}
}

// clickhouseOptions accepts either a full clickhouse:// (or tcp://) DSN or a
// bare host:port address.
func clickhouseOptions(dsn string) (*clickhouse.Options, error) {
	if !strings.Contains(dsn, "://") {
		return &clickhouse.Options{Addr: []string{dsn}}, nil
	}

	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid clickhouse dsn")
	}
	return opts, nil
}

// sqliteDSN adds a busy timeout to file databases so a transactional run and
// concurrent readers wait on each other instead of failing with SQLITE_BUSY.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "_pragma=busy_timeout") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)"
}

func ping(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = timeout

	return backoff.RetryNotify(func() error {
		return db.PingContext(ctx)
	}, backoff.WithContext(bo, ctx), func(err error, wait time.Duration) {
		logger.Warn("Database not reachable, retrying", "error", err, "wait", wait)
	})
}
