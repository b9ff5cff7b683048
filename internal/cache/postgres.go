package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verbumdei/lectio/internal/liturgy"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// keyNamespace prefixes every durable key so the table can be shared
// with other data without collisions.
const keyNamespace = "readings"

// PostgresConfig controls the pool behind the durable tier.
type PostgresConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Postgres is the durable cache tier: a key-value table holding one
// serialized DailyReadings per date key. It is available only in some
// deployments; callers probe it at startup and silently run without
// it when the probe fails.
type Postgres struct {
	pool  pgPool
	table string
}

// NewPostgres connects to the durable tier and verifies it with a
// ping, creating the backing table if needed. Any failure here means
// the tier is unavailable; the caller decides whether to continue
// without it.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("cache.postgres_dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "lectio_readings"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	store := &Postgres{pool: pool, table: table}
	if err := store.probe(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresWithPool constructs a tier from an existing pool
// (primarily for testing).
func NewPostgresWithPool(pool pgPool, table string) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "lectio_readings"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Postgres{pool: pool, table: table}, nil
}

func (p *Postgres) probe(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	cache_key TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	stored_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, p.table)
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure cache table: %w", err)
	}
	return nil
}

// Name identifies the tier.
func (p *Postgres) Name() string {
	return "postgres"
}

// Close releases the underlying pool resources.
func (p *Postgres) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}

// Get loads the record stored under the namespaced key.
func (p *Postgres) Get(ctx context.Context, key string) (liturgy.DailyReadings, bool, error) {
	query := fmt.Sprintf("SELECT payload FROM %s WHERE cache_key = $1", p.table)
	var payload []byte
	err := p.pool.QueryRow(ctx, query, namespacedKey(key)).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return liturgy.DailyReadings{}, false, nil
	}
	if err != nil {
		return liturgy.DailyReadings{}, false, fmt.Errorf("query cache row: %w", err)
	}
	var value liturgy.DailyReadings
	if err := json.Unmarshal(payload, &value); err != nil {
		return liturgy.DailyReadings{}, false, fmt.Errorf("decode cache payload: %w", err)
	}
	return value, true, nil
}

// Put upserts the serialized record under the namespaced key.
func (p *Postgres) Put(ctx context.Context, key string, value liturgy.DailyReadings) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache payload: %w", err)
	}
	query := fmt.Sprintf(`
INSERT INTO %s (cache_key, payload, stored_at)
VALUES ($1, $2, NOW())
ON CONFLICT (cache_key) DO UPDATE SET payload = EXCLUDED.payload, stored_at = NOW()`, p.table)
	if _, err := p.pool.Exec(ctx, query, namespacedKey(key), payload); err != nil {
		return fmt.Errorf("upsert cache row: %w", err)
	}
	return nil
}

func namespacedKey(key string) string {
	return keyNamespace + ":" + key
}
