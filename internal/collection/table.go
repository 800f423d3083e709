package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Table implements types.Collection for one schema.
type Table struct {
	set    *Set
	schema Schema
}

var _ types.Collection = (*Table)(nil)

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Name returns the collection name.
func (t *Table) Name() string { return t.schema.Name }

// Select returns the records matching q.
func (t *Table) Select(ctx context.Context, q types.Query) (recs []types.Record, err error) {
	defer t.observe("select", time.Now(), &err)

	a := &args{dialect: t.set.dialect}
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columnList(t.schema.ColumnNames()))
	sb.WriteString(" FROM ")
	sb.WriteString(quote(t.schema.Name))

	where, err := t.where(a, q.Filter)
	if err != nil {
		return nil, err
	}
	sb.WriteString(where)

	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			if _, ok := t.schema.Column(o.Field); !ok {
				return nil, fmt.Errorf("%w: order by %q", types.ErrInvalidFilter, o.Field)
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			parts = append(parts, quote(o.Field)+" "+dir)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	recs, err = t.query(ctx, t.schema, t.schema.ColumnNames(), sb.String(), a.values)
	if err != nil {
		return nil, err
	}
	if err := t.join(ctx, recs, q.Joins); err != nil {
		return nil, err
	}
	return recs, nil
}

// Get returns the record with the given key.
func (t *Table) Get(ctx context.Context, key string, joins ...types.Join) (rec types.Record, err error) {
	defer t.observe("get", time.Now(), &err)
	if !t.set.dialect.validKey(key) {
		return nil, types.ErrInvalidID
	}
	return t.get(ctx, key, joins)
}

func (t *Table) get(ctx context.Context, key string, joins []types.Join) (types.Record, error) {
	a := &args{dialect: t.set.dialect}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		columnList(t.schema.ColumnNames()), quote(t.schema.Name), quote(KeyColumn), a.add(key))

	recs, err := t.query(ctx, t.schema, t.schema.ColumnNames(), query, a.values)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, types.ErrNotFound
	}
	if err := t.join(ctx, recs, joins); err != nil {
		return nil, err
	}
	return recs[0], nil
}

// Insert stores rec under a new UUID v7 key and returns the stored record.
// The creation and update timestamps are stamped unless rec supplies them.
func (t *Table) Insert(ctx context.Context, rec types.Record) (out types.Record, err error) {
	defer t.observe("insert", time.Now(), &err)

	if _, ok := rec[KeyColumn]; ok {
		return nil, fmt.Errorf("%w: %s", types.ErrServerOwnedField, KeyColumn)
	}
	id := newUUID()
	row := make(types.Record, len(rec)+3)
	for k, v := range rec {
		row[k] = v
	}
	row[KeyColumn] = id
	now := t.set.now().UTC()
	for _, col := range []string{t.schema.Created, t.schema.Updated} {
		if col == "" {
			continue
		}
		if v, ok := row[col]; !ok || v == nil {
			row[col] = now
		}
	}

	names, values, err := t.encodeRecord(row)
	if err != nil {
		return nil, err
	}
	a := &args{dialect: t.set.dialect}
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = a.add(v)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(t.schema.Name), columnList(names), strings.Join(marks, ", "))

	if err := t.exec(ctx, query, a.values, nil); err != nil {
		return nil, err
	}
	return t.get(ctx, id, nil)
}

// Update writes the columns present in rec and bumps the update timestamp.
func (t *Table) Update(ctx context.Context, key string, rec types.Record) (out types.Record, err error) {
	defer t.observe("update", time.Now(), &err)

	if !t.set.dialect.validKey(key) {
		return nil, types.ErrInvalidID
	}
	if _, ok := rec[KeyColumn]; ok {
		return nil, fmt.Errorf("%w: %s", types.ErrServerOwnedField, KeyColumn)
	}
	row := make(types.Record, len(rec)+1)
	for k, v := range rec {
		row[k] = v
	}
	if t.schema.Updated != "" {
		if _, ok := row[t.schema.Updated]; !ok {
			row[t.schema.Updated] = t.set.now().UTC()
		}
	}
	if len(row) == 0 {
		return t.get(ctx, key, nil)
	}

	names, values, err := t.encodeRecord(row)
	if err != nil {
		return nil, err
	}
	a := &args{dialect: t.set.dialect}
	sets := make([]string, len(names))
	for i, name := range names {
		sets[i] = quote(name) + " = " + a.add(values[i])
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		quote(t.schema.Name), strings.Join(sets, ", "), quote(KeyColumn), a.add(key))

	var affected int64
	if err := t.exec(ctx, query, a.values, &affected); err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, types.ErrNotFound
	}
	return t.get(ctx, key, nil)
}

// Delete removes the record with the given key. Constraint violations are
// returned as errors.
func (t *Table) Delete(ctx context.Context, key string) (err error) {
	defer t.observe("delete", time.Now(), &err)

	if !t.set.dialect.validKey(key) {
		return types.ErrInvalidID
	}
	a := &args{dialect: t.set.dialect}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", quote(t.schema.Name), quote(KeyColumn), a.add(key))

	var affected int64
	if err := t.exec(ctx, query, a.values, &affected); err != nil {
		return err
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// where renders an equality filter. A nil filter value matches NULL.
func (t *Table) where(a *args, filter map[string]any) (string, error) {
	if len(filter) == 0 {
		return "", nil
	}
	names := sortedKeys(filter)
	conds := make([]string, 0, len(names))
	for _, name := range names {
		col, ok := t.schema.Column(name)
		if !ok {
			return "", fmt.Errorf("%w: filter on %q", types.ErrInvalidFilter, name)
		}
		v, err := encode(t.set.dialect, col, filter[name])
		if err != nil {
			return "", err
		}
		if v == nil {
			conds = append(conds, quote(name)+" IS NULL")
			continue
		}
		conds = append(conds, quote(name)+" = "+a.add(v))
	}
	return " WHERE " + strings.Join(conds, " AND "), nil
}

// encodeRecord validates rec against the schema and returns its columns in
// sorted order with encoded values.
func (t *Table) encodeRecord(rec types.Record) ([]string, []any, error) {
	names := sortedKeys(rec)
	values := make([]any, len(names))
	for i, name := range names {
		col, ok := t.schema.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s.%s", types.ErrUnknownColumn, t.schema.Name, name)
		}
		v, err := encode(t.set.dialect, col, rec[name])
		if err != nil {
			return nil, nil, err
		}
		values[i] = v
	}
	return names, values, nil
}

// query runs a SELECT whose result columns are cols of schema sc.
func (t *Table) query(ctx context.Context, sc Schema, cols []string, query string, values []any) ([]types.Record, error) {
	t.set.logger.Debug("query", slog.String("collection", sc.Name), slog.String("sql", query))

	rows, err := t.set.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sc.Name, err)
	}
	defer func() { _ = rows.Close() }()

	columns := make([]Column, len(cols))
	for i, name := range cols {
		col, ok := sc.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", types.ErrUnknownColumn, sc.Name, name)
		}
		columns[i] = col
	}

	recs := []types.Record{}
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", sc.Name, err)
		}
		rec := make(types.Record, len(cols))
		for i, col := range columns {
			v, err := decode(col, raw[i])
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", sc.Name, err)
			}
			rec[col.Name] = v
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", sc.Name, err)
	}
	return recs, nil
}

func (t *Table) exec(ctx context.Context, query string, values []any, affected *int64) error {
	t.set.logger.Debug("exec", slog.String("collection", t.schema.Name), slog.String("sql", query))

	res, err := t.set.db.ExecContext(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("exec %s: %w", t.schema.Name, err)
	}
	if affected != nil {
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected %s: %w", t.schema.Name, err)
		}
		*affected = n
	}
	return nil
}

func (t *Table) observe(op string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	if errors.Is(err, types.ErrNotFound) {
		err = nil
	}
	t.set.metrics.observe(t.schema.Name, op, start, err)
}

func columnList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}
