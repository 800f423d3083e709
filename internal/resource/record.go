package resource

import (
	"encoding/json"
	"time"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Field accessors. Missing and NULL values yield the zero value of the
// domain field, never nil.

func str(rec types.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

func strOr(rec types.Record, key, fallback string) string {
	if s := str(rec, key); s != "" {
		return s
	}
	return fallback
}

func integer(rec types.Record, key string) int64 {
	switch v := rec[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func number(rec types.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func numberPtr(rec types.Record, key string) *float64 {
	switch rec[key].(type) {
	case float64, int64:
		f := number(rec, key)
		return &f
	}
	return nil
}

func boolean(rec types.Record, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

func timestamp(rec types.Record, key string) time.Time {
	t, _ := rec[key].(time.Time)
	return t
}

func timestampPtr(rec types.Record, key string) *time.Time {
	t, ok := rec[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// decodeJSON unmarshals a JSON column into dst. Malformed or absent values
// leave dst untouched.
func decodeJSON(rec types.Record, key string, dst any) {
	raw, ok := rec[key].(json.RawMessage)
	if !ok || len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

func nested(rec types.Record, key string) types.Record {
	r, _ := rec[key].(types.Record)
	return r
}

func children(rec types.Record, key string) []types.Record {
	rs, _ := rec[key].([]types.Record)
	return rs
}

// ref converts an optional reference id to a column value; empty is NULL.
func ref(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// setPtr writes *v under key when v is non-nil.
func setPtr[T any](rec types.Record, key string, v *T) {
	if v != nil {
		rec[key] = *v
	}
}
