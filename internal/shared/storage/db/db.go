package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"go.uber.org/multierr"

	"ai-engine/internal/shared/telemetry"
)

const driverName = "pgx"

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Target describes the Postgres instance the service checks.
// URL, when set, takes precedence over the individual parts.
type Target struct {
	URL      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

var openDB = sql.Open

// DefaultProbeOptions returns defaults for a single short-lived liveness probe.
func DefaultProbeOptions() Options {
	return Options{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		PingTimeout:     3 * time.Second,
	}
}

// OptionsFromEnv overrides pool defaults with DB_* env vars if present.
// The probe timeout is owned by config and is not read here.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	if v, ok := readEnvInt("DB_MAX_OPEN_CONNS"); ok {
		opts.MaxOpenConns = v
	}
	if v, ok := readEnvInt("DB_MAX_IDLE_CONNS"); ok {
		opts.MaxIdleConns = v
	}
	if v, ok := readEnvDuration("DB_CONN_MAX_LIFETIME"); ok {
		opts.ConnMaxLifetime = v
	}
	if v, ok := readEnvDuration("DB_CONN_MAX_IDLE_TIME"); ok {
		opts.ConnMaxIdleTime = v
	}
	return opts
}

// DSN renders the target as a postgres:// connection string.
// connectTimeout is rounded up to whole seconds, the unit libpq accepts.
func (t Target) DSN(connectTimeout time.Duration) string {
	if raw := strings.TrimSpace(t.URL); raw != "" {
		return raw
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(t.User, t.Password),
		Host:   net.JoinHostPort(t.Host, strconv.Itoa(t.Port)),
		Path:   "/" + t.Name,
	}
	q := url.Values{}
	if t.SSLMode != "" {
		q.Set("sslmode", t.SSLMode)
	}
	if connectTimeout > 0 {
		secs := int(math.Ceil(connectTimeout.Seconds()))
		q.Set("connect_timeout", strconv.Itoa(max(1, secs)))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// CheckDSN reports whether dsn parses as a pgx connection string.
func CheckDSN(dsn string) error {
	if strings.TrimSpace(dsn) == "" {
		return errors.New("database dsn is empty")
	}
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return fmt.Errorf("parse database dsn: %w", err)
	}
	return nil
}

// PasswordOf returns the password carried by dsn, or "" if it has none or does not parse.
func PasswordOf(dsn string) string {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return ""
	}
	return cfg.Password
}

// Probe opens a connection to dsn, runs SELECT 1 and closes it again.
// The whole exchange is bounded by opts.PingTimeout.
func Probe(ctx context.Context, dsn string, opts Options) (err error) {
	if strings.TrimSpace(dsn) == "" {
		return errors.New("database dsn is empty")
	}

	database, err := openDB(driverName, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close database: %w", cerr))
		}
	}()

	applyOptions(database, opts)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var one int
	if err := database.QueryRowContext(probeCtx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("liveness query: %w", err)
	}
	if one != 1 {
		return fmt.Errorf("liveness query returned %d", one)
	}
	return nil
}

func applyOptions(db *sql.DB, opts Options) {
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 1
	}
	if opts.MaxIdleConns < 0 {
		opts.MaxIdleConns = 0
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Minute
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

func readEnvInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("db.env.invalid", map[string]any{"key": key, "error": err})
		return 0, false
	}
	return val, true
}

func readEnvDuration(key string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("db.env.invalid", map[string]any{"key": key, "error": err})
		return 0, false
	}
	return val, true
}
