// Package sqlite implements the SQLite gateway backend. The database lives
// in a single file under the configured data directory; the schema is
// managed by the embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/backoffice/internal/collection"
	"github.com/mesh-intelligence/backoffice/internal/migrations"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// DBFile is the database file name inside DataDir.
const DBFile = "backoffice.db"

// Backend implements types.Gateway on a local SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	set      *collection.Set

	logger  *slog.Logger
	metrics *collection.Metrics
	now     func() time.Time
	seed    bool
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

// WithClock sets the clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithoutSeed skips seeding legal texts and showcases on attach.
func WithoutSeed() Option {
	return func(b *Backend) { b.seed = false }
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: slog.New(slog.DiscardHandler),
		seed:   true,
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

// Attach opens the database under config.DataDir, creating the directory
// if needed, applies pending migrations, and seeds the built-in rows.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps pragmas and writes consistent.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := migrations.Up(ctx, db, migrations.DialectSQLite); err != nil {
		db.Close()
		return err
	}

	setOpts := []collection.Option{
		collection.WithLogger(b.logger),
		collection.WithMetrics(b.metrics),
	}
	if b.now != nil {
		setOpts = append(setOpts, collection.WithClock(b.now))
	}
	set := collection.NewSet(db, collection.SQLite, setOpts...)
	if b.seed {
		if err := collection.Seed(ctx, set); err != nil {
			db.Close()
			return fmt.Errorf("seed: %w", err)
		}
	}

	b.db = db
	b.set = set
	b.config = config
	b.attached = true
	b.logger.Debug("sqlite backend attached", slog.String("path", dbPath))
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrGatewayDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.set = nil
	b.attached = false
	return nil
}

// DB exposes the underlying handle for migrations and tests.
func (b *Backend) DB() *sql.DB {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.db
}
