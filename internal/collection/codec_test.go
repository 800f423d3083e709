package collection

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func TestEncode(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 7, time.UTC)
	name := "Rose"

	tests := []struct {
		name    string
		dialect Dialect
		col     Column
		in      any
		want    any
		wantErr bool
	}{
		{"nil", SQLite, textCol("a"), nil, nil, false},
		{"nil pointer", SQLite, textCol("a"), (*string)(nil), nil, false},
		{"string pointer", SQLite, textCol("a"), &name, "Rose", false},
		{"typed string", SQLite, textCol("a"), types.OrderShipped, "shipped", false},
		{"int from float", SQLite, intCol("a"), 3.0, int64(3), false},
		{"fractional int", SQLite, intCol("a"), 3.5, nil, true},
		{"real from int", SQLite, realCol("a"), 2, 2.0, false},
		{"bool sqlite", SQLite, boolCol("a"), true, int64(1), false},
		{"bool postgres", Postgres, boolCol("a"), false, false, false},
		{"json value", SQLite, jsonCol("a"), []string{"x"}, `["x"]`, false},
		{"json raw", SQLite, jsonCol("a"), json.RawMessage(`{"k":1}`), `{"k":1}`, false},
		{"json invalid raw", SQLite, jsonCol("a"), json.RawMessage(`{`), nil, true},
		{"time sqlite", SQLite, timeCol("a"), ts, "2026-02-03T04:05:06.000000007Z", false},
		{"time postgres", Postgres, timeCol("a"), ts, ts, false},
		{"time from string", SQLite, timeCol("a"), "2026-02-03", "2026-02-03T00:00:00.000000000Z", false},
		{"time garbage", SQLite, timeCol("a"), "soon", nil, true},
		{"text mismatch", SQLite, textCol("a"), 12, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encode(tt.dialect, tt.col, tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	tests := []struct {
		name string
		col  Column
		in   any
		want any
	}{
		{"null", textCol("a"), nil, nil},
		{"bytes text", textCol("a"), []byte("x"), "x"},
		{"uuid bytes", textCol("a"), [16]byte{1}, "01000000-0000-0000-0000-000000000000"},
		{"int", intCol("a"), int64(4), int64(4)},
		{"numeric string", realCol("a"), "1.25", 1.25},
		{"sqlite bool", boolCol("a"), int64(0), false},
		{"json string", jsonCol("a"), `[1]`, json.RawMessage(`[1]`)},
		{"json decoded", jsonCol("a"), map[string]any{"k": "v"}, json.RawMessage(`{"k":"v"}`)},
		{"time text", timeCol("a"), "2026-02-03T04:05:06.000000000Z", ts},
		{"time value", timeCol("a"), ts.In(time.FixedZone("TRT", 3*3600)), ts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode(tt.col, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectPlaceholders(t *testing.T) {
	a := &args{dialect: Postgres}
	assert.Equal(t, "$1", a.add("x"))
	assert.Equal(t, "$2", a.add("y"))

	s := &args{dialect: SQLite}
	assert.Equal(t, "?", s.add("x"))
	assert.Equal(t, `"order"`, quote("order"))
	assert.Equal(t, `"a""b"`, quote(`a"b`))
}
