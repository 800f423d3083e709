package collection

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Dialect selects placeholder syntax and value encoding.
type Dialect string

// Supported dialects. The names match goose dialect names.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// placeholder returns the bind parameter for the n-th argument (1-based).
func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// validKey reports whether key can name a row. Postgres keys are UUID
// columns, so other text is rejected before it reaches the server.
func (d Dialect) validKey(key string) bool {
	if key == "" {
		return false
	}
	if d == Postgres {
		_, err := uuid.Parse(key)
		return err == nil
	}
	return true
}

// quote double-quotes an identifier. Column names such as "order" collide
// with keywords, so every identifier is quoted.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// args accumulates bind arguments and renders their placeholders.
type args struct {
	dialect Dialect
	values  []any
}

func (a *args) add(v any) string {
	a.values = append(a.values, v)
	return a.dialect.placeholder(len(a.values))
}
