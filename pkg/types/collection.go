package types

import (
	"context"
	"errors"
)

// Record is one raw row of a remote collection, keyed by snake_case column
// name. Decoded values are string, int64, float64, bool, time.Time,
// json.RawMessage, nested Record / []Record for joins, or nil for NULL.
type Record map[string]any

// OrderBy sorts a Select by one column.
type OrderBy struct {
	Field string
	Desc  bool
}

// Join attaches related rows to every record returned by Select or Get.
//
// A to-one join follows LocalKey on this record to the id of Collection and
// nests the selected Columns under As (nil when the target is missing).
// A to-many join sets ForeignKey instead: rows of Collection whose ForeignKey
// equals this record's id are nested under As as []Record.
type Join struct {
	Collection string
	LocalKey   string
	ForeignKey string
	Columns    []string
	As         string
}

// Query describes a filtered, ordered read. Filter values are compared by
// equality. A zero Limit means no limit.
type Query struct {
	Filter map[string]any
	Order  []OrderBy
	Joins  []Join
	Limit  int
}

// Collection provides uniform CRUD over one named remote collection.
type Collection interface {
	// Name returns the collection name (e.g. "products").
	Name() string

	// Select returns every record matching q in the requested order.
	Select(ctx context.Context, q Query) ([]Record, error)

	// Get returns the record with the given key.
	// Returns ErrNotFound if no record exists with that key.
	Get(ctx context.Context, key string, joins ...Join) (Record, error)

	// Insert stores a new record. The backend assigns id and the creation
	// timestamps; rec must not carry them. Returns the stored record.
	Insert(ctx context.Context, rec Record) (Record, error)

	// Update writes only the columns present in rec.
	// Returns ErrNotFound if no record exists with that key.
	Update(ctx context.Context, key string, rec Record) (Record, error)

	// Delete removes the record with the given key.
	// Returns ErrNotFound if no record exists with that key.
	Delete(ctx context.Context, key string) error
}

// Collection operation errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidID        = errors.New("invalid record id")
	ErrInvalidData      = errors.New("invalid record data")
	ErrInvalidFilter    = errors.New("invalid filter or order field")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrServerOwnedField = errors.New("field is assigned by the server")
)
