// Package postgres implements the gateway backend for a hosted Postgres
// database through the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/mesh-intelligence/backoffice/internal/collection"
	"github.com/mesh-intelligence/backoffice/internal/migrations"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

const driverName = "pgx"

var sqlOpen = sql.Open

// Backend implements types.Gateway on Postgres.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
	set      *collection.Set

	logger      *slog.Logger
	metrics     *collection.Metrics
	migrate     bool
	seed        bool
	pingTimeout time.Duration
}

var _ types.Gateway = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger for the backend and its collections.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics records collection operations in m.
func WithMetrics(m *collection.Metrics) Option {
	return func(b *Backend) { b.metrics = m }
}

// WithoutMigrations skips applying migrations on attach, for databases whose
// schema is managed elsewhere.
func WithoutMigrations() Option {
	return func(b *Backend) { b.migrate = false }
}

// WithoutSeed skips seeding legal texts and showcases on attach.
func WithoutSeed() Option {
	return func(b *Backend) { b.seed = false }
}

// NewBackend creates a detached Postgres backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger:      slog.New(slog.DiscardHandler),
		migrate:     true,
		seed:        true,
		pingTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Collection returns the named collection.
// Returns ErrGatewayDetached if the backend is not attached.
func (b *Backend) Collection(name string) (types.Collection, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrGatewayDetached
	}
	return b.set.Collection(name)
}

// Attach connects to config.DSN, verifies the connection, applies pending
// migrations, and seeds the built-in rows.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendPostgres {
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}

	db, err := sqlOpen(driverName, config.DSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}

	if b.migrate {
		if err := migrations.Up(ctx, db, migrations.DialectPostgres); err != nil {
			_ = db.Close()
			return err
		}
	}

	set := collection.NewSet(db, collection.Postgres,
		collection.WithLogger(b.logger),
		collection.WithMetrics(b.metrics),
	)
	if b.seed {
		if err := collection.Seed(ctx, set); err != nil {
			_ = db.Close()
			return fmt.Errorf("seed: %w", err)
		}
	}

	b.db = db
	b.set = set
	b.attached = true
	b.logger.Debug("postgres backend attached")
	return nil
}

// Detach closes the connection pool. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.set = nil
	b.attached = false
	return err
}

// DB exposes the underlying handle for migrations and tests.
func (b *Backend) DB() *sql.DB {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.db
}
