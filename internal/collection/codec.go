package collection

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// timeLayout is fixed-width so that stored SQLite timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var parseLayouts = []string{
	timeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// encode converts a record value into a driver argument for col.
func encode(d Dialect, col Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		v = rv.Elem().Interface()
		rv = rv.Elem()
	}

	switch col.Kind {
	case KindText:
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case KindInt:
		if n, ok := toInt64(rv); ok {
			return n, nil
		}
	case KindReal:
		if f, ok := toFloat64(rv); ok {
			return f, nil
		}
	case KindBool:
		if rv.Kind() == reflect.Bool {
			if d == SQLite {
				if rv.Bool() {
					return int64(1), nil
				}
				return int64(0), nil
			}
			return rv.Bool(), nil
		}
	case KindJSON:
		var raw []byte
		switch x := v.(type) {
		case json.RawMessage:
			raw = x
		case []byte:
			raw = x
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: %v", types.ErrInvalidData, col.Name, err)
			}
			raw = b
		}
		if len(raw) == 0 {
			return nil, nil
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: column %s: invalid json", types.ErrInvalidData, col.Name)
		}
		return string(raw), nil
	case KindTime:
		var t time.Time
		switch x := v.(type) {
		case time.Time:
			t = x
		case string:
			parsed, err := parseTime(x)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: %v", types.ErrInvalidData, col.Name, err)
			}
			t = parsed
		default:
			return nil, fmt.Errorf("%w: column %s: want time, got %T", types.ErrInvalidData, col.Name, v)
		}
		t = t.UTC()
		if d == SQLite {
			return t.Format(timeLayout), nil
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: column %s: want %s, got %T", types.ErrInvalidData, col.Name, col.Kind, v)
}

// decode converts a scanned driver value into its record representation.
func decode(col Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch col.Kind {
	case KindText:
		switch x := v.(type) {
		case string:
			return x, nil
		case []byte:
			return string(x), nil
		case time.Time:
			return x.UTC().Format(time.DateOnly), nil
		case [16]byte:
			return uuid.UUID(x).String(), nil
		}
	case KindInt:
		switch x := v.(type) {
		case string:
			return strconv.ParseInt(x, 10, 64)
		case []byte:
			return strconv.ParseInt(string(x), 10, 64)
		}
		if n, ok := toInt64(reflect.ValueOf(v)); ok {
			return n, nil
		}
	case KindReal:
		switch x := v.(type) {
		case string:
			return strconv.ParseFloat(x, 64)
		case []byte:
			return strconv.ParseFloat(string(x), 64)
		}
		if f, ok := toFloat64(reflect.ValueOf(v)); ok {
			return f, nil
		}
	case KindBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case int64:
			return x != 0, nil
		case string:
			return strconv.ParseBool(x)
		case []byte:
			return strconv.ParseBool(string(x))
		}
	case KindJSON:
		switch x := v.(type) {
		case string:
			return json.RawMessage(x), nil
		case []byte:
			return json.RawMessage(append([]byte(nil), x...)), nil
		default:
			b, err := json.Marshal(x)
			if err != nil {
				return nil, err
			}
			return json.RawMessage(b), nil
		}
	case KindTime:
		switch x := v.(type) {
		case time.Time:
			return x.UTC(), nil
		case string:
			return parseTime(x)
		case []byte:
			return parseTime(string(x))
		}
	}
	return nil, fmt.Errorf("column %s: cannot decode %T as %s", col.Name, v, col.Kind)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func toInt64(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == float64(int64(f)) {
			return int64(f), true
		}
	}
	return 0, false
}

func toFloat64(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
