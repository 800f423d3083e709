package resource

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// env is the configuration shared by every service.
type env struct {
	gw         types.Gateway
	now        func() time.Time
	logger     *slog.Logger
	bcryptCost int
}

// Option configures the services.
type Option func(*env)

// WithClock overrides the clock used for history entries, audit records,
// and revenue windows.
func WithClock(now func() time.Time) Option {
	return func(e *env) { e.now = now }
}

// WithLogger sets the logger used for best-effort operations.
func WithLogger(l *slog.Logger) Option {
	return func(e *env) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBcryptCost sets the cost of admin password hashes.
func WithBcryptCost(cost int) Option {
	return func(e *env) { e.bcryptCost = cost }
}

// Services groups the resource services of one gateway.
type Services struct {
	Products   *Products
	Categories *Categories
	Orders     *Orders
	Customers  *Customers
	Reviews    *Reviews
	Banners    *Banners
	Showcases  *Showcases
	LegalTexts *LegalTexts
	Admins     *Admins
	Dashboard  *Dashboard
}

// New creates the services for gw.
func New(gw types.Gateway, opts ...Option) *Services {
	e := &env{
		gw:         gw,
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(e)
	}
	return &Services{
		Products:   &Products{e},
		Categories: &Categories{e},
		Orders:     &Orders{e},
		Customers:  &Customers{e},
		Reviews:    &Reviews{e},
		Banners:    &Banners{e},
		Showcases:  &Showcases{e},
		LegalTexts: &LegalTexts{e},
		Admins:     &Admins{e},
		Dashboard:  &Dashboard{e},
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// list reads a collection and maps every record.
func list[T any](ctx context.Context, e *env, name string, q types.Query, mapper func(types.Record) T) ([]T, error) {
	c, err := e.gw.Collection(name)
	if err != nil {
		return nil, fetchError(name, err)
	}
	recs, err := c.Select(ctx, q)
	if err != nil {
		return nil, fetchError(name, err)
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, mapper(r))
	}
	return out, nil
}

// find reads one record. A missing record is reported as found == false.
func find[T any](ctx context.Context, e *env, name, id string, mapper func(types.Record) T, joins ...types.Join) (T, bool, error) {
	var zero T
	c, err := e.gw.Collection(name)
	if err != nil {
		return zero, false, fetchError(name, err)
	}
	rec, err := c.Get(ctx, id, joins...)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fetchError(name, err)
	}
	return mapper(rec), true, nil
}

func insert(ctx context.Context, e *env, name string, rec types.Record) (types.Record, error) {
	c, err := e.gw.Collection(name)
	if err != nil {
		return nil, writeError(name, types.OpCreate, "", err)
	}
	out, err := c.Insert(ctx, rec)
	if err != nil {
		return nil, writeError(name, types.OpCreate, "", err)
	}
	return out, nil
}

func update(ctx context.Context, e *env, name, id string, rec types.Record) (types.Record, error) {
	c, err := e.gw.Collection(name)
	if err != nil {
		return nil, writeError(name, types.OpUpdate, id, err)
	}
	out, err := c.Update(ctx, id, rec)
	if err != nil {
		return nil, writeError(name, types.OpUpdate, id, err)
	}
	return out, nil
}

func remove(ctx context.Context, e *env, name, id string) error {
	c, err := e.gw.Collection(name)
	if err != nil {
		return writeError(name, types.OpDelete, id, err)
	}
	if err := c.Delete(ctx, id); err != nil {
		return writeError(name, types.OpDelete, id, err)
	}
	return nil
}

// rejoin re-reads a written record with joins so joined display fields come
// from the server. The write already succeeded, so a failed re-read falls
// back to the written record.
func rejoin(ctx context.Context, e *env, name string, rec types.Record, joins ...types.Join) types.Record {
	id, _ := rec["id"].(string)
	c, err := e.gw.Collection(name)
	if err == nil {
		var joined types.Record
		if joined, err = c.Get(ctx, id, joins...); err == nil {
			return joined
		}
	}
	e.logger.Warn("re-read after write failed", slog.String("collection", name), slog.String("id", id), slog.Any("error", err))
	return rec
}
