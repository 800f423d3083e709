package collection

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// join attaches related records to recs. Each join issues one IN query
// against the target collection regardless of how many records are joined.
func (t *Table) join(ctx context.Context, recs []types.Record, joins []types.Join) error {
	if len(recs) == 0 {
		return nil
	}
	for _, j := range joins {
		target, ok := t.set.schemas[j.Collection]
		if !ok {
			return fmt.Errorf("%w: join %q", types.ErrCollectionNotFound, j.Collection)
		}
		as := j.As
		if as == "" {
			as = j.Collection
		}
		switch {
		case j.LocalKey != "" && j.ForeignKey == "":
			if err := t.joinOne(ctx, recs, target, j, as); err != nil {
				return err
			}
		case j.ForeignKey != "" && j.LocalKey == "":
			if err := t.joinMany(ctx, recs, target, j, as); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: join %q needs exactly one of LocalKey or ForeignKey", types.ErrInvalidFilter, j.Collection)
		}
	}
	return nil
}

// joinOne follows LocalKey to the target id and nests the selected columns.
func (t *Table) joinOne(ctx context.Context, recs []types.Record, target Schema, j types.Join, as string) error {
	if _, ok := t.schema.Column(j.LocalKey); !ok {
		return fmt.Errorf("%w: join key %q", types.ErrInvalidFilter, j.LocalKey)
	}
	cols, err := joinColumns(target, j.Columns, KeyColumn)
	if err != nil {
		return err
	}

	keys := distinctStrings(recs, j.LocalKey)
	byID := map[string]types.Record{}
	if len(keys) > 0 {
		related, err := t.selectIn(ctx, target, cols, KeyColumn, keys)
		if err != nil {
			return err
		}
		for _, r := range related {
			id, _ := r[KeyColumn].(string)
			byID[id] = r
		}
	}

	for _, rec := range recs {
		key, _ := rec[j.LocalKey].(string)
		r, ok := byID[key]
		if !ok {
			rec[as] = nil
			continue
		}
		rec[as] = project(r, j.Columns)
	}
	return nil
}

// joinMany nests the target rows whose ForeignKey equals the record id.
func (t *Table) joinMany(ctx context.Context, recs []types.Record, target Schema, j types.Join, as string) error {
	if _, ok := target.Column(j.ForeignKey); !ok {
		return fmt.Errorf("%w: join key %s.%s", types.ErrInvalidFilter, target.Name, j.ForeignKey)
	}
	cols, err := joinColumns(target, j.Columns, j.ForeignKey)
	if err != nil {
		return err
	}

	keys := distinctStrings(recs, KeyColumn)
	related, err := t.selectIn(ctx, target, cols, j.ForeignKey, keys)
	if err != nil {
		return err
	}
	byParent := map[string][]types.Record{}
	for _, r := range related {
		parent, _ := r[j.ForeignKey].(string)
		byParent[parent] = append(byParent[parent], project(r, j.Columns))
	}

	for _, rec := range recs {
		id, _ := rec[KeyColumn].(string)
		children := byParent[id]
		if children == nil {
			children = []types.Record{}
		}
		rec[as] = children
	}
	return nil
}

// selectIn reads cols of target where column is one of keys, ordered by
// creation time when the target has one.
func (t *Table) selectIn(ctx context.Context, target Schema, cols []string, column string, keys []string) ([]types.Record, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	a := &args{dialect: t.set.dialect}
	marks := make([]string, len(keys))
	for i, k := range keys {
		marks[i] = a.add(k)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (%s)",
		columnList(cols), quote(target.Name), quote(column), strings.Join(marks, ", "))
	if target.Created != "" {
		query += " ORDER BY " + quote(target.Created) + " ASC"
	}
	return t.query(ctx, target, cols, query, a.values)
}

// joinColumns returns the requested columns plus the key needed to match
// rows. An empty request selects every column.
func joinColumns(target Schema, requested []string, key string) ([]string, error) {
	if len(requested) == 0 {
		return target.ColumnNames(), nil
	}
	cols := []string{key}
	for _, c := range requested {
		if _, ok := target.Column(c); !ok {
			return nil, fmt.Errorf("%w: %s.%s", types.ErrUnknownColumn, target.Name, c)
		}
		if c != key {
			cols = append(cols, c)
		}
	}
	return cols, nil
}

// project keeps only the requested columns of r. An empty request keeps all.
func project(r types.Record, columns []string) types.Record {
	if len(columns) == 0 {
		return r
	}
	out := make(types.Record, len(columns))
	for _, c := range columns {
		out[c] = r[c]
	}
	return out
}

func distinctStrings(recs []types.Record, column string) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range recs {
		s, ok := rec[column].(string)
		if !ok || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
