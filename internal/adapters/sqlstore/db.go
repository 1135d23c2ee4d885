package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/tursodatabase/go-libsql"
	_ "modernc.org/sqlite"
)

// Options describes how to reach the datastore.
type Options struct {
	Driver string
	// Path is the database file for the SQLite backends.
	Path string
	Host string
	// Port 0 selects the dialect's default port.
	Port     int
	User     string
	Password string
	Name     string
}

// DB is an owned handle on the connection pool plus its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

var databaseNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open creates the target database when it is missing, opens a pool and
// verifies it with a ping.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	if err := ensureDatabase(ctx, dialect, opts); err != nil {
		return nil, fmt.Errorf("failed to prepare database: %w", err)
	}

	dsn, err := buildDSN(dialect, opts, opts.Name)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configurePool(db, dialect)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// configurePool keeps connections short-lived so a connection dropped by
// the server is replaced instead of reused. database/sql retries
// driver.ErrBadConn on a fresh connection before the caller sees it.
func configurePool(db *sql.DB, dialect Dialect) {
	if dialect.IsSQLite() {
		// One writer at a time; also keeps file locks simple.
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(5 * time.Minute)
		return
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
}

func buildDSN(dialect Dialect, opts Options, dbName string) (string, error) {
	switch dialect.DriverName {
	case "libsql":
		if strings.HasPrefix(opts.Path, "file:") || strings.Contains(opts.Path, "://") {
			return opts.Path, nil
		}
		return "file:" + opts.Path, nil
	case "sqlite":
		return opts.Path + "?_pragma=busy_timeout(5000)", nil
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = opts.User
		cfg.Passwd = opts.Password
		cfg.Net = "tcp"
		cfg.Addr = serverAddr(dialect, opts)
		cfg.DBName = dbName
		cfg.ParseTime = true
		cfg.Loc = time.Local
		// Report matched rather than changed rows so an update that
		// rewrites identical values is not mistaken for a missing id.
		cfg.ClientFoundRows = true
		return cfg.FormatDSN(), nil
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(opts.User, opts.Password),
			Host:     serverAddr(dialect, opts),
			Path:     "/" + dbName,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", dialect.DriverName)
}

func serverAddr(dialect Dialect, opts Options) string {
	port := opts.Port
	if port == 0 {
		port = dialect.DefaultPort
	}
	return net.JoinHostPort(opts.Host, strconv.Itoa(port))
}

func ensureDatabase(ctx context.Context, dialect Dialect, opts Options) error {
	if dialect.IsSQLite() {
		return ensureDatabaseFile(opts.Path)
	}

	if !databaseNamePattern.MatchString(opts.Name) {
		return fmt.Errorf("invalid database name %q", opts.Name)
	}

	switch dialect.DriverName {
	case "mysql":
		dsn, err := buildDSN(dialect, opts, "")
		if err != nil {
			return err
		}
		return execOnServer(ctx, dialect.DriverName, dsn, func(server *sql.DB) error {
			_, err := server.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+opts.Name+"`")
			return err
		})
	case "postgres":
		dsn, err := buildDSN(dialect, opts, "postgres")
		if err != nil {
			return err
		}
		return execOnServer(ctx, dialect.DriverName, dsn, func(server *sql.DB) error {
			var exists int
			err := server.QueryRowContext(ctx, `SELECT COUNT(*) FROM pg_database WHERE datname = $1`, opts.Name).Scan(&exists)
			if err != nil || exists > 0 {
				return err
			}
			_, err = server.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(opts.Name))
			return err
		})
	}
	return nil
}

func execOnServer(ctx context.Context, driver, dsn string, fn func(*sql.DB) error) error {
	server, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()

	if err := server.PingContext(ctx); err != nil {
		return err
	}
	return fn(server)
}

func ensureDatabaseFile(path string) error {
	path = strings.TrimPrefix(path, "file:")
	if path == "" || strings.Contains(path, ":memory:") || strings.Contains(path, "://") {
		return nil
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
