package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/backoffice/internal/migrations"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestSet(t *testing.T, opts ...Option) *Set {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, migrations.DialectSQLite))
	return NewSet(db, SQLite, append([]Option{WithClock(tickingClock())}, opts...)...)
}

func mustCollection(t *testing.T, s *Set, name string) types.Collection {
	t.Helper()
	c, err := s.Collection(name)
	require.NoError(t, err)
	return c
}

func TestSet_Collection(t *testing.T) {
	s := newTestSet(t)

	for _, name := range types.StandardCollectionNames {
		c, err := s.Collection(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}

	_, err := s.Collection("unknown")
	assert.ErrorIs(t, err, types.ErrCollectionNotFound)
	assert.Len(t, s.Names(), len(types.StandardCollectionNames))
}

func TestTable_InsertAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	categories := mustCollection(t, newTestSet(t), types.CollectionCategories)

	rec, err := categories.Insert(ctx, types.Record{"name": "Kadın", "order": 1, "is_active": true})
	require.NoError(t, err)

	id, ok := rec["id"].(string)
	require.True(t, ok)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.Equal(t, "Kadın", rec["name"])
	assert.Equal(t, int64(1), rec["order"])
	assert.Equal(t, true, rec["is_active"])
	assert.Nil(t, rec["description"])
	assert.IsType(t, time.Time{}, rec["created_at"])
	assert.IsType(t, time.Time{}, rec["updated_at"])
}

func TestTable_InsertRejectsServerOwnedAndUnknown(t *testing.T) {
	ctx := context.Background()
	categories := mustCollection(t, newTestSet(t), types.CollectionCategories)

	_, err := categories.Insert(ctx, types.Record{"id": "x", "name": "a"})
	assert.ErrorIs(t, err, types.ErrServerOwnedField)

	_, err = categories.Insert(ctx, types.Record{"name": "a", "colour": "red"})
	assert.ErrorIs(t, err, types.ErrUnknownColumn)

	_, err = categories.Insert(ctx, types.Record{"name": "a", "order": "first"})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestTable_GetNotFound(t *testing.T) {
	ctx := context.Background()
	products := mustCollection(t, newTestSet(t), types.CollectionProducts)

	_, err := products.Get(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = products.Get(ctx, "")
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestTable_SelectFilterOrderLimit(t *testing.T) {
	ctx := context.Background()
	banners := mustCollection(t, newTestSet(t), types.CollectionBanners)

	for i, title := range []string{"C", "A", "B", "D"} {
		_, err := banners.Insert(ctx, types.Record{
			"title": title, "order": int64(3 - i), "is_active": i%2 == 0,
		})
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		query types.Query
		want  []string
	}{
		{"order asc", types.Query{Order: []types.OrderBy{{Field: "order"}}}, []string{"D", "B", "A", "C"}},
		{"order desc", types.Query{Order: []types.OrderBy{{Field: "title", Desc: true}}}, []string{"D", "C", "B", "A"}},
		{"filter", types.Query{Filter: map[string]any{"is_active": true}, Order: []types.OrderBy{{Field: "title"}}}, []string{"B", "C"}},
		{"limit", types.Query{Order: []types.OrderBy{{Field: "created_at", Desc: true}}, Limit: 2}, []string{"D", "B"}},
		{"no match", types.Query{Filter: map[string]any{"title": "Z"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := banners.Select(ctx, tt.query)
			require.NoError(t, err)
			got := []string{}
			for _, r := range recs {
				got = append(got, r["title"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_SelectRejectsUnknownFields(t *testing.T) {
	ctx := context.Background()
	banners := mustCollection(t, newTestSet(t), types.CollectionBanners)

	_, err := banners.Select(ctx, types.Query{Filter: map[string]any{"nope": 1}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)

	_, err = banners.Select(ctx, types.Query{Order: []types.OrderBy{{Field: "nope"}}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestTable_SelectNilFilterMatchesNull(t *testing.T) {
	ctx := context.Background()
	banners := mustCollection(t, newTestSet(t), types.CollectionBanners)

	_, err := banners.Insert(ctx, types.Record{"title": "no link"})
	require.NoError(t, err)
	_, err = banners.Insert(ctx, types.Record{"title": "linked", "link": "/sale"})
	require.NoError(t, err)

	recs, err := banners.Select(ctx, types.Query{Filter: map[string]any{"link": nil}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "no link", recs[0]["title"])
}

func TestTable_UpdateWritesOnlySuppliedColumns(t *testing.T) {
	ctx := context.Background()
	categories := mustCollection(t, newTestSet(t), types.CollectionCategories)

	created, err := categories.Insert(ctx, types.Record{"name": "Erkek", "slug": "erkek", "order": 2})
	require.NoError(t, err)
	id := created["id"].(string)

	updated, err := categories.Update(ctx, id, types.Record{"is_active": false})
	require.NoError(t, err)

	assert.Equal(t, false, updated["is_active"])
	assert.Equal(t, "Erkek", updated["name"])
	assert.Equal(t, "erkek", updated["slug"])
	assert.True(t, updated["updated_at"].(time.Time).After(created["updated_at"].(time.Time)))
	assert.Equal(t, created["created_at"], updated["created_at"])

	_, err = categories.Update(ctx, "missing", types.Record{"name": "x"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = categories.Update(ctx, id, types.Record{"id": "other"})
	assert.ErrorIs(t, err, types.ErrServerOwnedField)
}

func TestTable_Delete(t *testing.T) {
	ctx := context.Background()
	customers := mustCollection(t, newTestSet(t), types.CollectionCustomers)

	rec, err := customers.Insert(ctx, types.Record{"first_name": "Ayşe", "status": "active"})
	require.NoError(t, err)
	id := rec["id"].(string)

	require.NoError(t, customers.Delete(ctx, id))
	assert.ErrorIs(t, customers.Delete(ctx, id), types.ErrNotFound)
	assert.ErrorIs(t, customers.Delete(ctx, ""), types.ErrInvalidID)
}

func TestTable_DeleteConstraintViolationPropagates(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)
	categories := mustCollection(t, s, types.CollectionCategories)
	products := mustCollection(t, s, types.CollectionProducts)

	cat, err := categories.Insert(ctx, types.Record{"name": "Unisex"})
	require.NoError(t, err)
	_, err = products.Insert(ctx, types.Record{"name": "Oud", "category_id": cat["id"]})
	require.NoError(t, err)

	err = categories.Delete(ctx, cat["id"].(string))
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrNotFound)

	_, err = categories.Get(ctx, cat["id"].(string))
	assert.NoError(t, err)
}

func TestTable_JoinToOne(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)
	categories := mustCollection(t, s, types.CollectionCategories)
	products := mustCollection(t, s, types.CollectionProducts)

	cat, err := categories.Insert(ctx, types.Record{"name": "Kadın", "slug": "kadin"})
	require.NoError(t, err)
	withCat, err := products.Insert(ctx, types.Record{"name": "Rose", "category_id": cat["id"]})
	require.NoError(t, err)
	_, err = products.Insert(ctx, types.Record{"name": "Loose"})
	require.NoError(t, err)

	join := types.Join{Collection: types.CollectionCategories, LocalKey: "category_id", Columns: []string{"name"}}
	recs, err := products.Select(ctx, types.Query{Order: []types.OrderBy{{Field: "name", Desc: true}}, Joins: []types.Join{join}})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Rose", recs[0]["name"])
	assert.Equal(t, types.Record{"name": "Kadın"}, recs[0]["categories"])
	assert.Nil(t, recs[1]["categories"])

	got, err := products.Get(ctx, withCat["id"].(string), join)
	require.NoError(t, err)
	assert.Equal(t, types.Record{"name": "Kadın"}, got["categories"])
}

func TestTable_JoinToMany(t *testing.T) {
	ctx := context.Background()
	s := newTestSet(t)
	orders := mustCollection(t, s, types.CollectionOrders)
	items := mustCollection(t, s, types.CollectionOrderItems)

	order, err := orders.Insert(ctx, types.Record{"order_number": "ORD-1", "status": "pending"})
	require.NoError(t, err)
	empty, err := orders.Insert(ctx, types.Record{"order_number": "ORD-2", "status": "pending"})
	require.NoError(t, err)
	for _, name := range []string{"first", "second"} {
		_, err := items.Insert(ctx, types.Record{"order_id": order["id"], "product_name": name, "quantity": 1})
		require.NoError(t, err)
	}

	join := types.Join{Collection: types.CollectionOrderItems, ForeignKey: "order_id"}
	got, err := orders.Get(ctx, order["id"].(string), join)
	require.NoError(t, err)
	children, ok := got["order_items"].([]types.Record)
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "first", children[0]["product_name"])
	assert.Equal(t, "second", children[1]["product_name"])

	got, err = orders.Get(ctx, empty["id"].(string), join)
	require.NoError(t, err)
	assert.Equal(t, []types.Record{}, got["order_items"])
}

func TestTable_JoinUnknownCollection(t *testing.T) {
	ctx := context.Background()
	products := mustCollection(t, newTestSet(t), types.CollectionProducts)
	_, err := products.Insert(ctx, types.Record{"name": "x"})
	require.NoError(t, err)

	_, err = products.Select(ctx, types.Query{Joins: []types.Join{{Collection: "brands", LocalKey: "category_id"}}})
	assert.ErrorIs(t, err, types.ErrCollectionNotFound)
}

func TestTable_CodecRoundTrip(t *testing.T) {
	ctx := context.Background()
	products := mustCollection(t, newTestSet(t), types.CollectionProducts)
	notes := types.ScentNotes{Top: []string{"bergamot"}, Middle: []string{"rose"}, Base: []string{"musk"}}
	price := 149.9

	rec, err := products.Insert(ctx, types.Record{
		"name":             "Rose",
		"price":            1299.5,
		"discounted_price": &price,
		"stock":            int64(12),
		"images":           []string{"a.jpg", "b.jpg"},
		"scent_notes":      notes,
		"is_featured":      true,
		"gender":           types.GenderFemale,
		"production_date":  "2025-06-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 1299.5, rec["price"])
	assert.Equal(t, 149.9, rec["discounted_price"])
	assert.Equal(t, int64(12), rec["stock"])
	assert.Equal(t, true, rec["is_featured"])
	assert.Equal(t, true, rec["is_active"]) // column default
	assert.Equal(t, "female", rec["gender"])
	assert.Equal(t, "2025-06-01", rec["production_date"])

	var images []string
	require.NoError(t, json.Unmarshal(rec["images"].(json.RawMessage), &images))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, images)

	var gotNotes types.ScentNotes
	require.NoError(t, json.Unmarshal(rec["scent_notes"].(json.RawMessage), &gotNotes))
	assert.Equal(t, notes, gotNotes)
}

func TestTable_TimestampsSortChronologically(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	logs := mustCollection(t, newTestSet(t), types.CollectionAdminLoginLogs)

	for _, d := range []time.Duration{100 * time.Millisecond, 120 * time.Millisecond, 0} {
		_, err := logs.Insert(ctx, types.Record{"status": "success", "timestamp": base.Add(d)})
		require.NoError(t, err)
	}

	recs, err := logs.Select(ctx, types.Query{Order: []types.OrderBy{{Field: "timestamp", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, base.Add(120*time.Millisecond), recs[0]["timestamp"])
	assert.Equal(t, base.Add(100*time.Millisecond), recs[1]["timestamp"])
	assert.Equal(t, base, recs[2]["timestamp"])
}

func TestTable_Metrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())
	banners := mustCollection(t, newTestSet(t, WithMetrics(m)), types.CollectionBanners)

	_, err := banners.Insert(ctx, types.Record{"title": "a"})
	require.NoError(t, err)
	_, err = banners.Select(ctx, types.Query{Filter: map[string]any{"bogus": 1}})
	require.Error(t, err)
	_, err = banners.Get(ctx, "missing")
	require.ErrorIs(t, err, types.ErrNotFound)

	ops := m.Operations()
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("banners", "insert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("banners", "select", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("banners", "get", "ok")))
}
