package collection

import (
	"database/sql"
	"log/slog"
	"sort"
	"time"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Set holds the collections of one database.
type Set struct {
	db      *sql.DB
	dialect Dialect
	schemas map[string]Schema
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Set.
type Option func(*Set)

// WithLogger sets the logger used for query tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records every operation in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Set) { s.metrics = m }
}

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Set) { s.now = now }
}

// WithSchemas replaces the standard schemas.
func WithSchemas(schemas ...Schema) Option {
	return func(s *Set) {
		s.schemas = make(map[string]Schema, len(schemas))
		for _, sc := range schemas {
			s.schemas[sc.Name] = sc
		}
	}
}

// NewSet binds db to the standard collection schemas.
func NewSet(db *sql.DB, dialect Dialect, opts ...Option) *Set {
	s := &Set{
		db:      db,
		dialect: dialect,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	WithSchemas(Schemas()...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collection returns the named collection.
// Returns ErrCollectionNotFound if the name has no schema.
func (s *Set) Collection(name string) (types.Collection, error) {
	sc, ok := s.schemas[name]
	if !ok {
		return nil, types.ErrCollectionNotFound
	}
	return &Table{set: s, schema: sc}, nil
}

// Names returns the collection names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dialect returns the dialect of the set.
func (s *Set) Dialect() Dialect {
	return s.dialect
}
