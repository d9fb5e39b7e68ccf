package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/config"
)

// ErrNotConfigured is returned when no DSN was provided.
var ErrNotConfigured = errors.New("postgres not configured")

// Postgres owns the pgx pool. The pool is created on first use.
type Postgres struct {
	cfg    config.PostgresConfig
	logger *zap.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgres prepares a handle; no connection is made until EnsureConnected.
func NewPostgres(cfg config.PostgresConfig, logger *zap.Logger) *Postgres {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; database calls will fail")
	}
	return &Postgres{cfg: cfg, logger: logger}
}

// EnsureConnected opens the pool once. Concurrent callers share the same pool.
func (p *Postgres) EnsureConnected(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}
	if p.cfg.DSN == "" {
		return nil, ErrNotConfigured
	}

	poolCfg, err := pgxpool.ParseConfig(p.cfg.DSN)
	if err != nil {
		return nil, err
	}
	if p.cfg.MaxConns > 0 {
		poolCfg.MaxConns = p.cfg.MaxConns
	}
	if p.cfg.MinConns > 0 {
		poolCfg.MinConns = p.cfg.MinConns
	}
	if p.cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(p.cfg.ConnMaxIdleSec) * time.Second
	}
	if p.cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(p.cfg.ConnMaxLifeSec) * time.Second
	}
	// NUMERIC columns scan into decimal.Decimal.
	poolCfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	p.logger.Info("connected to postgres")
	p.pool = pool
	return pool, nil
}

// Exec runs a statement on the pool.
func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := p.EnsureConnected(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pool.Exec(ctx, sql, args...)
}

// Query runs a query on the pool.
func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, err := p.EnsureConnected(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Query(ctx, sql, args...)
}

// QueryRow runs a single row query on the pool.
func (p *Postgres) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := p.EnsureConnected(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

// Ping verifies connectivity, connecting first if needed.
func (p *Postgres) Ping(ctx context.Context) error {
	pool, err := p.EnsureConnected(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
