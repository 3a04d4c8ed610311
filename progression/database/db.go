package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	connectTimeout  = 5 * time.Second
	connectAttempts = 5
	connectBackoff  = time.Second
)

type DBConfig struct {
	Host        string `toml:"host" env:"DB_HOST"`
	Port        int    `toml:"port" env:"DB_PORT"`
	User        string `toml:"user" env:"DB_USER"`
	Password    string `toml:"password" env:"DB_PASSWORD"`
	Database    string `toml:"database" env:"DB_NAME"`
	SSLMode     string `toml:"ssl_mode" env:"DB_SSLMODE"`
	PoolSize    int    `toml:"pool_size"`
	MinConns    int    `toml:"min_conns"`
	MaxLifetime int    `toml:"max_lifetime"`
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

// New opens the pgx pool used for DDL and health checks and the bun handle
// used by the repositories. Startup waits for the server with a bounded
// number of pings, so a database container that is still booting is not
// fatal.
func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts || ctx.Err() != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres %s:%d unreachable after %d attempts: %w", cfg.Host, cfg.Port, attempt, err)
		}
		slog.Warn("Postgres not ready, retrying",
			slog.String("type", "db"),
			slog.String("host", cfg.Host),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		select {
		case <-ctx.Done():
		case <-time.After(connectBackoff * time.Duration(attempt)):
		}
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN())))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}
	return &DB{pool: pool, bunDB: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// DSN renders the postgres:// URL shared by pgx and pgdriver.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	mode := c.SSLMode
	if mode == "" {
		mode = "disable"
	}
	q := url.Values{}
	q.Set("sslmode", mode)
	q.Set("connect_timeout", strconv.Itoa(int(connectTimeout/time.Second)))
	u.RawQuery = q.Encode()
	return u.String()
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// execDDL runs one statement on the pool and logs its outcome.
func (db *DB) execDDL(ctx context.Context, stmt string) error {
	start := time.Now()
	tag, err := db.pool.Exec(ctx, stmt)
	if err != nil {
		slog.Error("DDL failed",
			slog.String("type", "db"),
			slog.String("stmt", stmt),
			slog.Any("error", err))
		return err
	}
	slog.Debug("DDL applied",
		slog.String("type", "db"),
		slog.String("stmt", stmt),
		slog.String("tag", tag.String()),
		slog.Duration("took", time.Since(start)))
	return nil
}

// Ping checks both handles.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgx ping: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	db.pool.Close()
	if err := db.bunDB.Close(); err != nil {
		slog.Warn("Closing bun handle", slog.String("type", "db"), slog.Any("error", err))
	}
}
